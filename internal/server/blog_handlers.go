package server

import (
	"bytes"
	"html/template"
	"io"
	"net/http"

	"github.com/ezerfernandes/codetabs/internal/content"
	"github.com/ezerfernandes/codetabs/internal/multilang"
	"github.com/go-chi/chi/v5"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="/static/code.css">
</head>
<body>
<article>
<header>
<p>{{.Author}} · {{.Date}} · {{.ReadTime}} · {{.Likes}} likes</p>
</header>
{{.Body}}
</article>
</body>
</html>
`))

type pageData struct {
	*content.Article
	Body template.HTML
}

func (s *Server) listBlogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	writeJSON(w, http.StatusOK, s.content.List(content.Filter{
		Category: q.Get("category"),
		Topics:   content.ParseTopics(q.Get("topics")),
		Query:    q.Get("q"),
	}))
}

func (s *Server) getBlog(w http.ResponseWriter, r *http.Request) {
	article, err := s.content.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "get blog", err)

		return
	}

	writeJSON(w, http.StatusOK, article)
}

func (s *Server) blogPage(w http.ResponseWriter, r *http.Request) {
	article, err := s.content.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), statusOf(err))

		return
	}

	var body bytes.Buffer

	// Article content is already preprocessed.
	if err := s.html.Render(&body, []byte(article.Content)); err != nil {
		s.fail(w, "render blog", err)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	//nolint:gosec // body is goldmark output with raw HTML disabled
	_ = pageTemplate.Execute(w, pageData{Article: article, Body: template.HTML(body.String())})
}

func (s *Server) codeCSS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css")
	_ = s.html.CSS(w)
}

func (s *Server) publishBlog(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}

	var draft content.Draft
	if !decodeBody(w, r, &draft) {
		return
	}

	post, err := s.content.Publish(user, draft)
	if err != nil {
		s.fail(w, "publish blog", err)

		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) updateBlog(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}

	var draft content.Draft
	if !decodeBody(w, r, &draft) {
		return
	}

	post, err := s.content.Update(user, chi.URLParam(r, "id"), draft)
	if err != nil {
		s.fail(w, "update blog", err)

		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (s *Server) deleteBlog(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}

	if err := s.content.Delete(user, chi.URLParam(r, "id")); err != nil {
		s.fail(w, "delete blog", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) likeBlog(w http.ResponseWriter, r *http.Request) {
	likes, liked, err := s.content.ToggleLike(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "like blog", err)

		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"likes": likes, "liked": liked})
}

func (s *Server) myBlogs(w http.ResponseWriter, _ *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}

	posts, err := s.content.Mine(user)
	if err != nil {
		s.fail(w, "my blogs", err)

		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) listTopics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.content.Topics())
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, content.Categories)
}

func (s *Server) preprocess(w http.ResponseWriter, r *http.Request) {
	src, ok := readBody(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = io.WriteString(w, multilang.Preprocess(string(src)))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	src, ok := readBody(w, r)
	if !ok {
		return
	}

	out, err := s.html.Article(string(src))
	if err != nil {
		s.fail(w, "render", err)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	defer r.Body.Close()

	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())

		return nil, false
	}

	return src, true
}
