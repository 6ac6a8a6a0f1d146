package content

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ezerfernandes/codetabs/internal/auth"
	"github.com/ezerfernandes/codetabs/internal/multilang"
	"github.com/ezerfernandes/codetabs/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	keyUserPosts    = "userBlogs"
	keyLikesPrefix  = "blog_likes_"
	keyLikedPrefix  = "blog_liked_"
	postType        = "blog"
	dateLayout      = "Jan 2, 2006"
	wordsPerMinute  = 200
	descriptionMax  = 150
	anonymousAuthor = "Anonymous"
)

var (
	ErrNotFound      = errors.New("post not found")
	ErrMissingFields = errors.New("title and content are required")
	ErrForbidden     = errors.New("post belongs to another user")
)

// Article is a post ready for display: its content has been preprocessed and
// its like state attached.
type Article struct {
	Post
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
	// UserAuthored is set for posts written through Publish.
	UserAuthored bool `json:"userAuthored"`
}

// Draft is the editable part of a post.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	// Tags is a comma-separated list.
	Tags string `json:"tags"`
}

// Service reads the catalog and reads and writes user posts and likes.
type Service struct {
	mu      sync.Mutex
	store   store.Store
	catalog *Catalog
	logger  *zap.Logger
	now     func() time.Time
}

// NewService returns a Service over the built-in catalog and s.
func NewService(s store.Store, catalog *Catalog, logger *zap.Logger) *Service {
	return &Service{store: s, catalog: catalog, logger: logger, now: time.Now}
}

// SetClock replaces the clock used to date new posts.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// List returns the catalog posts passing f, in catalog order.
func (s *Service) List(f Filter) []Post {
	posts := make([]Post, 0, len(s.catalog.Posts))

	for _, p := range s.catalog.Posts {
		if f.Match(p) {
			posts = append(posts, p)
		}
	}

	return posts
}

// Topics returns the topic catalog.
func (s *Service) Topics() []Topic {
	return s.catalog.Topics
}

// Get returns the article with the given ID. Catalog posts shadow user posts
// with the same ID.
func (s *Service) Get(id string) (*Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, userAuthored, err := s.find(id)
	if err != nil {
		return nil, err
	}

	likes, liked, err := s.likes(id)
	if err != nil {
		return nil, err
	}

	post.Content = multilang.Preprocess(post.Content)

	return &Article{Post: post, Likes: likes, Liked: liked, UserAuthored: userAuthored}, nil
}

// Mine returns the posts written by user.
func (s *Service) Mine(user *auth.User) ([]Post, error) {
	if user == nil {
		return nil, auth.ErrNotSignedIn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.userPosts()
	if err != nil {
		return nil, err
	}

	mine := make([]Post, 0, len(posts))

	for _, p := range posts {
		if p.AuthorID == user.ID {
			mine = append(mine, p)
		}
	}

	return mine, nil
}

// Publish stores a new post written by user.
func (s *Service) Publish(user *auth.User, d Draft) (*Post, error) {
	if user == nil {
		return nil, auth.ErrNotSignedIn
	}

	post := Post{
		ID:       uuid.NewString(),
		Type:     postType,
		Date:     s.now().Format(dateLayout),
		Author:   user.FullName,
		AuthorID: user.ID,
	}

	if post.Author == "" {
		post.Author = anonymousAuthor
	}

	if err := apply(&post, d); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.userPosts()
	if err != nil {
		return nil, err
	}

	if err := store.SetJSON(s.store, keyUserPosts, append(posts, post)); err != nil {
		return nil, err
	}

	s.logger.Info("Post published", zap.String("id", post.ID), zap.String("author", user.ID))

	return &post, nil
}

// Update replaces the editable fields of a post owned by user.
func (s *Service) Update(user *auth.User, id string, d Draft) (*Post, error) {
	if user == nil {
		return nil, auth.ErrNotSignedIn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, idx, err := s.owned(user, id)
	if err != nil {
		return nil, err
	}

	post := posts[idx]
	if err := apply(&post, d); err != nil {
		return nil, err
	}

	posts[idx] = post

	if err := store.SetJSON(s.store, keyUserPosts, posts); err != nil {
		return nil, err
	}

	return &post, nil
}

// Delete removes a post owned by user along with its likes.
func (s *Service) Delete(user *auth.User, id string) error {
	if user == nil {
		return auth.ErrNotSignedIn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, idx, err := s.owned(user, id)
	if err != nil {
		return err
	}

	if err := store.SetJSON(s.store, keyUserPosts, append(posts[:idx], posts[idx+1:]...)); err != nil {
		return err
	}

	for _, key := range []string{keyLikesPrefix + id, keyLikedPrefix + id} {
		if err := s.store.Remove(key); err != nil {
			s.logger.Warn("Failed to remove like state", zap.String("key", key), zap.Error(err))
		}
	}

	s.logger.Info("Post deleted", zap.String("id", id))

	return nil
}

// ToggleLike flips the liked flag of a post and returns the new count and
// flag.
func (s *Service) ToggleLike(id string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, err := s.find(id); err != nil {
		return 0, false, err
	}

	likes, liked, err := s.likes(id)
	if err != nil {
		return 0, false, err
	}

	liked = !liked
	if liked {
		likes++
	} else {
		likes--
	}

	if err := s.store.Set(keyLikedPrefix+id, []byte(strconv.FormatBool(liked))); err != nil {
		return 0, false, err
	}

	if err := s.store.Set(keyLikesPrefix+id, []byte(strconv.Itoa(likes))); err != nil {
		return 0, false, err
	}

	return likes, liked, nil
}

func (s *Service) find(id string) (Post, bool, error) {
	for _, p := range s.catalog.Posts {
		if p.ID == id {
			return p, false, nil
		}
	}

	posts, err := s.userPosts()
	if err != nil {
		return Post{}, false, err
	}

	for _, p := range posts {
		if p.ID == id {
			return p, true, nil
		}
	}

	return Post{}, false, fmt.Errorf("%w: %q", ErrNotFound, id)
}

func (s *Service) owned(user *auth.User, id string) ([]Post, int, error) {
	posts, err := s.userPosts()
	if err != nil {
		return nil, 0, err
	}

	for i, p := range posts {
		if p.ID != id {
			continue
		}

		if p.AuthorID != user.ID {
			return nil, 0, ErrForbidden
		}

		return posts, i, nil
	}

	return nil, 0, fmt.Errorf("%w: %q", ErrNotFound, id)
}

func (s *Service) userPosts() ([]Post, error) {
	var posts []Post

	if _, err := store.GetJSON(s.store, keyUserPosts, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (s *Service) likes(id string) (int, bool, error) {
	var likes int

	raw, ok, err := s.store.Get(keyLikesPrefix + id)
	if err != nil {
		return 0, false, err
	}

	if ok {
		// Unparsable counts read as zero.
		likes, _ = strconv.Atoi(string(raw))
	}

	raw, _, err = s.store.Get(keyLikedPrefix + id)
	if err != nil {
		return 0, false, err
	}

	return likes, string(raw) == "true", nil
}

// apply validates d and copies it onto p.
func apply(p *Post, d Draft) error {
	title := strings.TrimSpace(d.Title)
	content := strings.TrimSpace(d.Content)

	if title == "" || content == "" {
		return ErrMissingFields
	}

	p.Title = title
	p.Content = content
	p.Tags = ParseTopics(d.Tags)
	p.ReadTime = ReadTime(d.Content)

	p.Description = strings.TrimSpace(d.Description)
	if p.Description == "" {
		p.Description = truncate(title, descriptionMax)
	}

	return nil
}

// ReadTime estimates reading time at 200 space-separated words a minute.
func ReadTime(content string) string {
	words := len(strings.Split(content, " "))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))

	return fmt.Sprintf("%d min read", minutes)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
