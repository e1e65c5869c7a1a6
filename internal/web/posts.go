package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"Yatube/internal/api/middleware"
	"Yatube/internal/core/comments"
	"Yatube/internal/core/posts"
)

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postURL(id int64) string {
	return fmt.Sprintf("/posts/%d/", id)
}

// postIDParam parses {postID}; anything but a positive integer is a missing post
func postIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, posts.ErrPostNotFound
	}
	return id, nil
}

// postForm is the parsed create/edit form
type postForm struct {
	groupID *int64
	image   *posts.ImageUpload
	errors  map[string]string
	text    string
}

// parsePostForm reads the multipart (or urlencoded) post form.
// Field problems are collected in errors; transport failures are returned.
func (h *Handlers) parsePostForm(w http.ResponseWriter, r *http.Request) (*postForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	form := &postForm{errors: map[string]string{}}

	err := r.ParseMultipartForm(h.maxUpload)
	switch {
	case errors.Is(err, http.ErrNotMultipart):
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	case err != nil:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			form.errors["image"] = "Файл слишком большой."
			return form, nil
		}
		return nil, err
	}

	form.text = r.FormValue("text")

	if raw := strings.TrimSpace(r.FormValue("group")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			form.errors["group"] = "Выберите корректный вариант."
		} else {
			form.groupID = &id
		}
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return nil, err
	default:
		defer func() { _ = file.Close() }()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, err
		}
		if len(data) > 0 {
			form.image = &posts.ImageUpload{Filename: header.Filename, Data: data}
		}
	}

	return form, nil
}

// renderPostForm re-renders the create/edit page with field errors
func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, data PostFormPageData) {
	groupList, err := h.groups.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	data.Groups = groupList
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	h.render(w, r, "create_post.html", data)
}

// formErrors converts a post validation error into form field messages
func formErrors(err error) (map[string]string, bool) {
	var ve *posts.ValidationError
	if !errors.As(err, &ve) {
		return nil, false
	}
	return map[string]string{ve.Field: ve.Message}, true
}

// PostDetail handles GET /posts/{postID}/.
func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, err := postIDParam(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	post, err := h.posts.GetPost(ctx, postID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	count, err := h.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	postComments, err := h.comments.ListForPost(ctx, post.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "post_detail.html", PostDetailPageData{
		Base:            h.base(w, r, "Пост "+post.Excerpt()),
		Post:            post,
		Comments:        postComments,
		AuthorPostCount: count,
		CanEdit:         posts.CanEdit(post, middleware.GetUserID(r)),
	})
}

// CreatePostForm handles GET /create/.
func (h *Handlers) CreatePostForm(w http.ResponseWriter, r *http.Request) {
	h.renderPostForm(w, r, PostFormPageData{Base: h.base(w, r, "Новый пост")})
}

// CreatePostSubmit handles POST /create/ and redirects to the author's profile.
func (h *Handlers) CreatePostSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetUser(r)

	form, err := h.parsePostForm(w, r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	data := PostFormPageData{
		Base:    h.base(w, r, "Новый пост"),
		Text:    form.text,
		GroupID: form.groupID,
		Errors:  form.errors,
	}
	if len(form.errors) > 0 {
		h.renderPostForm(w, r, data)
		return
	}

	_, err = h.posts.CreatePost(r.Context(), posts.CreatePostRequest{
		AuthorID: viewer.ID,
		Text:     form.text,
		GroupID:  form.groupID,
		Image:    form.image,
	})
	if err != nil {
		if fieldErrors, ok := formErrors(err); ok {
			data.Errors = fieldErrors
			h.renderPostForm(w, r, data)
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(viewer.Username), http.StatusFound)
}

// EditPostForm handles GET /posts/{postID}/edit/.
// Anyone but the author is sent back to the post.
func (h *Handlers) EditPostForm(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDParam(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	post, err := h.posts.GetPost(r.Context(), postID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !posts.CanEdit(post, middleware.GetUserID(r)) {
		http.Redirect(w, r, postURL(post.ID), http.StatusFound)
		return
	}

	h.renderPostForm(w, r, PostFormPageData{
		Base:    h.base(w, r, "Редактировать пост"),
		IsEdit:  true,
		PostID:  post.ID,
		Text:    post.Text,
		GroupID: post.GroupID,
	})
}

// EditPostSubmit handles POST /posts/{postID}/edit/ and redirects to the post.
func (h *Handlers) EditPostSubmit(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDParam(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	form, err := h.parsePostForm(w, r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	data := PostFormPageData{
		Base:    h.base(w, r, "Редактировать пост"),
		IsEdit:  true,
		PostID:  postID,
		Text:    form.text,
		GroupID: form.groupID,
		Errors:  form.errors,
	}

	if len(form.errors) > 0 {
		// authorship still decides before any form feedback is shown
		post, err := h.posts.GetPost(r.Context(), postID)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		if !posts.CanEdit(post, middleware.GetUserID(r)) {
			http.Redirect(w, r, postURL(postID), http.StatusFound)
			return
		}
		h.renderPostForm(w, r, data)
		return
	}

	_, err = h.posts.UpdatePost(r.Context(), posts.UpdatePostRequest{
		PostID:   postID,
		EditorID: middleware.GetUserID(r),
		Text:     form.text,
		GroupID:  form.groupID,
		Image:    form.image,
	})
	switch {
	case err == nil:
		http.Redirect(w, r, postURL(postID), http.StatusFound)
	case posts.IsNotAuthor(err):
		http.Redirect(w, r, postURL(postID), http.StatusFound)
	default:
		if fieldErrors, ok := formErrors(err); ok {
			data.Errors = fieldErrors
			h.renderPostForm(w, r, data)
			return
		}
		h.handleError(w, r, err)
	}
}

// AddComment handles POST /posts/{postID}/comment/.
// A rejected comment is reported on the post page through a flash message.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDParam(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.serverError(w, r, err)
		return
	}

	_, err = h.comments.AddComment(r.Context(), comments.AddCommentRequest{
		PostID:   postID,
		AuthorID: middleware.GetUserID(r),
		Text:     r.PostFormValue("text"),
	})
	if err != nil {
		if !comments.IsValidationError(err) {
			h.handleError(w, r, err)
			return
		}
		if flashErr := h.auth.AddFlash(w, r, validationMessage(err)); flashErr != nil {
			h.serverError(w, r, flashErr)
			return
		}
	}

	http.Redirect(w, r, postURL(postID), http.StatusFound)
}

// CommentRedirect handles GET /posts/{postID}/comment/, which is where a login
// interrupted by a comment submission lands. It sends the user to the post.
func (h *Handlers) CommentRedirect(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDParam(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if _, err := h.posts.GetPost(r.Context(), postID); err != nil {
		h.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, postURL(postID), http.StatusFound)
}
