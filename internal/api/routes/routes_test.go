package routes

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"Yatube/internal/api/middleware"
	"Yatube/internal/config"
	"Yatube/internal/core/comments"
	"Yatube/internal/core/feeds"
	"Yatube/internal/core/follows"
	"Yatube/internal/core/groups"
	"Yatube/internal/core/images"
	"Yatube/internal/core/posts"
	"Yatube/internal/core/users"
	"Yatube/internal/testutil"
	"Yatube/internal/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const postMarker = `<article class="post"`

type harness struct {
	store    *testutil.Store
	feedRepo *testutil.FeedRepo
	cache    *feeds.IndexCache
	auth     *middleware.SessionAuth
	router   http.Handler
}

func newHarness(t *testing.T, cacheTTL time.Duration) *harness {
	t.Helper()

	store := testutil.NewStore()
	feedRepo := store.Feeds()
	cache := feeds.NewIndexCache(cacheTTL)

	cookieStore, err := middleware.NewCookieStore(strings.Repeat("k", config.MinSessionSecretLen), false)
	require.NoError(t, err)
	auth := middleware.NewSessionAuth(cookieStore, store.Users())

	imageStore, err := images.NewDiskStore(t.TempDir(), 960, 1<<20)
	require.NoError(t, err)

	templates, err := web.NewTemplates()
	require.NoError(t, err)

	followService := follows.NewFollowService(store.Follows(), store.Users())
	handlers := web.NewHandlers(web.Deps{
		Templates: templates,
		Auth:      auth,
		Feeds:     feeds.NewFeedService(feedRepo, store.Groups(), store.Users(), followService, cache),
		Posts:     posts.NewPostService(store.Posts(), store.Groups(), imageStore),
		Comments:  comments.NewCommentService(store.Comments(), store.Posts()),
		Follows:   followService,
		Users:     users.NewUserServiceWithCost(store.Users(), bcrypt.MinCost),
		Groups:    groups.NewGroupService(store.Groups()),
	})

	return &harness{
		store:    store,
		feedRepo: feedRepo,
		cache:    cache,
		auth:     auth,
		router: NewRouter(RouterConfig{
			Handlers:  handlers,
			Auth:      auth,
			StaticDir: t.TempDir(),
			MediaRoot: t.TempDir(),
		}),
	}
}

func (h *harness) createUser(t *testing.T, username string) *users.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := h.store.Users().Create(context.Background(), &users.User{Username: username, PasswordHash: string(hash)})
	require.NoError(t, err)
	return user
}

func (h *harness) createGroup(t *testing.T, slug string) *groups.Group {
	t.Helper()
	group, err := h.store.Groups().Create(context.Background(), &groups.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug})
	require.NoError(t, err)
	return group
}

func (h *harness) createPost(t *testing.T, author *users.User, text string, group *groups.Group) *posts.Post {
	t.Helper()
	post := &posts.Post{AuthorID: author.ID, Text: text}
	if group != nil {
		post.GroupID = &group.ID
	}
	created, err := h.store.Posts().Create(context.Background(), post)
	require.NoError(t, err)
	return created
}

// session returns cookies of a logged-in session for user
func (h *harness) session(t *testing.T, user *users.User) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, h.auth.Login(w, httptest.NewRequest(http.MethodGet, "/", nil), user.ID))
	return w.Result().Cookies()
}

func (h *harness) serve(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	return h.serve(httptest.NewRequest(http.MethodGet, path, nil), cookies)
}

func (h *harness) postForm(path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.serve(req, cookies)
}

// withCookies merges the cookies a response set into an existing jar
func withCookies(jar []*http.Cookie, w *httptest.ResponseRecorder) []*http.Cookie {
	out := append([]*http.Cookie{}, jar...)
	for _, c := range w.Result().Cookies() {
		replaced := false
		for i := range out {
			if out[i].Name == c.Name {
				out[i] = c
				replaced = true
			}
		}
		if !replaced {
			out = append(out, c)
		}
	}
	return out
}

func assertLoginRedirect(t *testing.T, w *httptest.ResponseRecorder, next string) {
	t.Helper()
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, middleware.LoginPath, loc.Path)
	assert.Equal(t, next, loc.Query().Get("next"))
}

func TestPublicPages(t *testing.T) {
	h := newHarness(t, 0)
	author := h.createUser(t, "auth")
	group := h.createGroup(t, "first")
	post := h.createPost(t, author, "Тестовый пост", group)

	for _, path := range []string{
		"/",
		"/group/first/",
		"/profile/auth/",
		fmt.Sprintf("/posts/%d/", post.ID),
		"/about/author/",
		"/about/tech/",
		"/auth/login/",
		"/auth/signup/",
	} {
		t.Run(path, func(t *testing.T) {
			w := h.get(path, nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		})
	}

	w := h.get("/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotFoundPages(t *testing.T) {
	h := newHarness(t, 0)

	for _, path := range []string{
		"/unexisting_page/",
		"/group/unknown-slug/",
		"/profile/ghost/",
		"/posts/999/",
		"/posts/abc/",
	} {
		t.Run(path, func(t *testing.T) {
			w := h.get(path, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Body.String(), "Страница не найдена")
		})
	}
}

func TestIndexPagination(t *testing.T) {
	h := newHarness(t, 0)
	author := h.createUser(t, "auth")
	for i := 0; i < 13; i++ {
		h.createPost(t, author, fmt.Sprintf("post number %d", i), nil)
	}

	first := h.get("/", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 10, strings.Count(first.Body.String(), postMarker))
	// newest first
	assert.Contains(t, first.Body.String(), "post number 12")
	assert.NotContains(t, first.Body.String(), "post number 2<")

	second := h.get("/?page=2", nil)
	assert.Equal(t, 3, strings.Count(second.Body.String(), postMarker))

	for _, raw := range []string{"999", "abc", "0", "-1"} {
		w := h.get("/?page="+raw, nil)
		assert.Equal(t, http.StatusOK, w.Code, raw)
	}
	assert.Equal(t, 3, strings.Count(h.get("/?page=999", nil).Body.String(), postMarker))
	assert.Equal(t, 10, strings.Count(h.get("/?page=abc", nil).Body.String(), postMarker))
}

func TestGroupAndProfileFeeds(t *testing.T) {
	h := newHarness(t, 0)
	author := h.createUser(t, "auth")
	first := h.createGroup(t, "first")
	second := h.createGroup(t, "second")
	for i := 0; i < 6; i++ {
		h.createPost(t, author, fmt.Sprintf("first group %d", i), first)
		h.createPost(t, author, fmt.Sprintf("second group %d", i), second)
	}
	h.createPost(t, author, "loose post", nil)

	w := h.get("/group/first/", nil)
	assert.Equal(t, 6, strings.Count(w.Body.String(), postMarker))
	assert.NotContains(t, w.Body.String(), "loose post")
	assert.NotContains(t, w.Body.String(), "second group")

	w = h.get("/group/"+second.Slug+"/", nil)
	body := w.Body.String()
	assert.Equal(t, 6, strings.Count(body, postMarker))
	assert.NotContains(t, body, "first group")
	for i := 5; i > 0; i-- {
		newer := strings.Index(body, fmt.Sprintf("second group %d", i))
		older := strings.Index(body, fmt.Sprintf("second group %d", i-1))
		require.NotEqual(t, -1, newer)
		require.NotEqual(t, -1, older)
		assert.Less(t, newer, older, "group feed is newest first")
	}

	w = h.get("/profile/auth/", nil)
	assert.Equal(t, 10, strings.Count(w.Body.String(), postMarker))
	assert.Contains(t, w.Body.String(), "Всего постов: 13")
}

func TestCreatePost(t *testing.T) {
	h := newHarness(t, 0)
	author := h.createUser(t, "auth")
	group := h.createGroup(t, "first")
	cookies := h.session(t, author)

	t.Run("anonymous is sent to login", func(t *testing.T) {
		assertLoginRedirect(t, h.get("/create/", nil), "/create/")
		assertLoginRedirect(t, h.postForm("/create/", url.Values{"text": {"x"}}, nil), "/create/")
		assert.Equal(t, 0, h.store.PostCount())
	})

	t.Run("form renders for author", func(t *testing.T) {
		w := h.get("/create/", cookies)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="text"`)
		assert.Contains(t, w.Body.String(), group.Title)
	})

	t.Run("empty text re-renders with error", func(t *testing.T) {
		w := h.postForm("/create/", url.Values{"text": {"   "}}, cookies)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "field-error")
		assert.Equal(t, 0, h.store.PostCount())
	})

	t.Run("unknown group re-renders with error", func(t *testing.T) {
		w := h.postForm("/create/", url.Values{"text": {"hello"}, "group": {"999"}}, cookies)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "field-error")
		assert.Equal(t, 0, h.store.PostCount())
	})

	t.Run("valid post redirects to profile", func(t *testing.T) {
		w := h.postForm("/create/", url.Values{
			"text":  {"Тестовый текст"},
			"group": {fmt.Sprint(group.ID)},
		}, cookies)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile/auth/", w.Header().Get("Location"))
		require.Equal(t, 1, h.store.PostCount())

		page, err := h.feedRepo.List(context.Background(), feeds.Filter{AuthorID: author.ID}, 0, 10)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "Тестовый текст", page[0].Text)
		assert.Equal(t, author.ID, page[0].AuthorID)
		require.NotNil(t, page[0].GroupID)
		assert.Equal(t, group.ID, *page[0].GroupID)
	})
}

func TestCreatePost_WithImage(t *testing.T) {
	h := newHarness(t, 0)
	author := h.createUser(t, "auth")
	cookies := h.session(t, author)

	img := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.Black, color.White})
	var gifData bytes.Buffer
	require.NoError(t, gif.Encode(&gifData, img, nil))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("text", "with picture"))
	part, err := mw.CreateFormFile("image", "small.gif")
	require.NoError(t, err)
	_, err = part.Write(gifData.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/create/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := h.serve(req, cookies)
	require.Equal(t, http.StatusFound, w.Code)

	page, err := h.feedRepo.List(context.Background(), feeds.Filter{AuthorID: author.ID}, 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.True(t, strings.HasPrefix(page[0].Image, "posts/"))

	// the image shows up on every listing
	assert.Contains(t, h.get("/", nil).Body.String(), "/media/"+page[0].Image)
	assert.Contains(t, h.get("/profile/auth/", nil).Body.String(), "/media/"+page[0].Image)
}

func TestEditPost(t *testing.T) {
	h := newHarness(t, 0)
	author := h.createUser(t, "auth")
	other := h.createUser(t, "other")
	post := h.createPost(t, author, "original", nil)
	editPath := fmt.Sprintf("/posts/%d/edit/", post.ID)
	detailPath := fmt.Sprintf("/posts/%d/", post.ID)

	t.Run("anonymous is sent to login", func(t *testing.T) {
		assertLoginRedirect(t, h.get(editPath, nil), editPath)
	})

	t.Run("non-author is redirected without changes", func(t *testing.T) {
		cookies := h.session(t, other)

		w := h.get(editPath, cookies)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, detailPath, w.Header().Get("Location"))

		w = h.postForm(editPath, url.Values{"text": {"hijacked"}}, cookies)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, detailPath, w.Header().Get("Location"))
		assert.Equal(t, "original", h.store.Post(post.ID).Text)
	})

	t.Run("author sees prefilled form", func(t *testing.T) {
		w := h.get(editPath, h.session(t, author))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "original")
	})

	t.Run("author edit redirects to detail", func(t *testing.T) {
		w := h.postForm(editPath, url.Values{"text": {"edited"}}, h.session(t, author))
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, detailPath, w.Header().Get("Location"))
		assert.Equal(t, "edited", h.store.Post(post.ID).Text)
		assert.Equal(t, 1, h.store.PostCount())
	})

	t.Run("edit of missing post is 404", func(t *testing.T) {
		w := h.get("/posts/999/edit/", h.session(t, author))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPostDetail(t *testing.T) {
	h := newHarness(t, 0)
	author := h.createUser(t, "auth")
	post := h.createPost(t, author, "detail text", nil)
	h.createPost(t, author, "second", nil)
	path := fmt.Sprintf("/posts/%d/", post.ID)

	w := h.get(path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "detail text")
	assert.Contains(t, body, "Всего постов автора: <span>2</span>")
	assert.NotContains(t, body, "редактировать запись")
	assert.NotContains(t, body, `name="text"`)

	w = h.get(path, h.session(t, author))
	assert.Contains(t, w.Body.String(), "редактировать запись")
}

func TestAddComment(t *testing.T) {
	h := newHarness(t, 0)
	author := h.createUser(t, "auth")
	reader := h.createUser(t, "reader")
	post := h.createPost(t, author, "commentable", nil)
	path := fmt.Sprintf("/posts/%d/comment/", post.ID)
	detailPath := fmt.Sprintf("/posts/%d/", post.ID)

	t.Run("anonymous is sent to login", func(t *testing.T) {
		assertLoginRedirect(t, h.postForm(path, url.Values{"text": {"hello"}}, nil), path)
		assert.Equal(t, 0, h.store.CommentCount())
	})

	t.Run("empty comment is flashed", func(t *testing.T) {
		cookies := h.session(t, reader)
		w := h.postForm(path, url.Values{"text": {""}}, cookies)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, detailPath, w.Header().Get("Location"))
		assert.Equal(t, 0, h.store.CommentCount())

		page := h.get(detailPath, withCookies(cookies, w))
		assert.Contains(t, page.Body.String(), `class="alert"`)
	})

	t.Run("comment is attached", func(t *testing.T) {
		w := h.postForm(path, url.Values{"text": {"hello"}}, h.session(t, reader))
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, detailPath, w.Header().Get("Location"))
		assert.Equal(t, 1, h.store.CommentCount())

		body := h.get(detailPath, nil).Body.String()
		assert.Contains(t, body, "hello")
		assert.Contains(t, body, "reader")
	})

	t.Run("route without trailing slash", func(t *testing.T) {
		w := h.postForm(fmt.Sprintf("/posts/%d/comment", post.ID), url.Values{"text": {"again"}}, h.session(t, reader))
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, 2, h.store.CommentCount())
	})

	t.Run("missing post is 404", func(t *testing.T) {
		w := h.postForm("/posts/999/comment/", url.Values{"text": {"hello"}}, h.session(t, reader))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, http.StatusNotFound, h.get("/posts/999/comment/", h.session(t, reader)).Code)
	})

	t.Run("login after anonymous comment returns to the post", func(t *testing.T) {
		w := h.postForm(path, url.Values{"text": {"hello"}}, nil)
		assertLoginRedirect(t, w, path)
		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)

		login := h.postForm(middleware.LoginPath, url.Values{
			"username": {"reader"},
			"password": {"supersecret"},
			"next":     {loc.Query().Get("next")},
		}, nil)
		require.Equal(t, http.StatusFound, login.Code)
		require.Equal(t, path, login.Header().Get("Location"))

		back := h.get(path, withCookies(nil, login))
		require.Equal(t, http.StatusFound, back.Code)
		assert.Equal(t, detailPath, back.Header().Get("Location"))

		noSlash := h.get(strings.TrimSuffix(path, "/"), withCookies(nil, login))
		require.Equal(t, http.StatusFound, noSlash.Code)
		assert.Equal(t, detailPath, noSlash.Header().Get("Location"))
	})
}

func TestFollowFlow(t *testing.T) {
	h := newHarness(t, 0)
	author := h.createUser(t, "auth")
	reader := h.createUser(t, "reader")
	stranger := h.createUser(t, "stranger")
	h.createPost(t, author, "followed content", nil)
	readerCookies := h.session(t, reader)

	assertLoginRedirect(t, h.get("/profile/auth/follow/", nil), "/profile/auth/follow/")
	assertLoginRedirect(t, h.get("/follow/", nil), "/follow/")

	// following twice leaves one edge
	for i := 0; i < 2; i++ {
		w := h.get("/profile/auth/follow/", readerCookies)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile/auth/", w.Header().Get("Location"))
	}
	assert.Equal(t, 1, h.store.FollowCount())

	// self-follow is a no-op
	h.get("/profile/auth/follow/", h.session(t, author))
	assert.Equal(t, 1, h.store.FollowCount())

	assert.Equal(t, http.StatusNotFound, h.get("/profile/ghost/follow/", readerCookies).Code)

	// profile shows the unfollow button to a follower
	assert.Contains(t, h.get("/profile/auth/", readerCookies).Body.String(), "/profile/auth/unfollow/")

	// the followed feed shows the author's post to the follower only
	assert.Contains(t, h.get("/follow/", readerCookies).Body.String(), "followed content")
	strangerFeed := h.get("/follow/", h.session(t, stranger))
	assert.Equal(t, http.StatusOK, strangerFeed.Code)
	assert.NotContains(t, strangerFeed.Body.String(), "followed content")

	w := h.get("/profile/auth/unfollow/", readerCookies)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, 0, h.store.FollowCount())
	assert.NotContains(t, h.get("/follow/", readerCookies).Body.String(), "followed content")

	// unfollowing again changes nothing
	h.get("/profile/auth/unfollow/", readerCookies)
	assert.Equal(t, 0, h.store.FollowCount())
}

func TestIndexCache(t *testing.T) {
	h := newHarness(t, time.Minute)
	author := h.createUser(t, "auth")
	h.createPost(t, author, "before cache", nil)

	first := h.get("/", nil).Body.String()
	assert.Contains(t, first, "before cache")

	h.createPost(t, author, "after cache", nil)
	cached := h.get("/", nil).Body.String()
	assert.NotContains(t, cached, "after cache")
	assert.Equal(t, 1, h.feedRepo.ListAllCalls())

	h.cache.Invalidate()
	fresh := h.get("/", nil).Body.String()
	assert.Contains(t, fresh, "after cache")
	assert.Equal(t, 2, h.feedRepo.ListAllCalls())
}

func TestSignupLoginLogout(t *testing.T) {
	h := newHarness(t, 0)

	w := h.postForm("/auth/signup/", url.Values{"username": {"bad name"}, "password": {"supersecret"}}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "field-error")

	w = h.postForm("/auth/signup/", url.Values{"username": {"leo"}, "password": {"supersecret"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	cookies := withCookies(nil, w)
	assert.Contains(t, h.get("/", cookies).Body.String(), "/auth/logout/")

	w = h.postForm("/auth/login/", url.Values{"username": {"leo"}, "password": {"wrong-password"}}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `class="alert"`)

	w = h.postForm("/auth/login/", url.Values{"username": {"leo"}, "password": {"supersecret"}, "next": {"/create/"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/create/", w.Header().Get("Location"))
	cookies = withCookies(nil, w)
	assert.Equal(t, http.StatusOK, h.get("/create/", cookies).Code)

	// external next is ignored
	w = h.postForm("/auth/login/", url.Values{"username": {"leo"}, "password": {"supersecret"}, "next": {"//evil.example/"}}, nil)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = h.get("/auth/logout/", cookies)
	require.Equal(t, http.StatusFound, w.Code)
	assertLoginRedirect(t, h.get("/create/", withCookies(cookies, w)), "/create/")
}
