package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"bugtrack-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	CreatePost(authorID string, input models.CreatePostInput) (models.Post, error)
	GetPosts(category string, page, limit int) ([]models.Post, error)
	GetPostByID(id string) (models.Post, error)
	UpdatePost(id, callerID string, input models.UpdatePostInput) (models.Post, error)
	DeletePost(id, callerID string) error
}

// PostService provides business logic for authored posts, including the
// ownership rule on mutation.
type PostService struct {
	db       *sql.DB
	validate *validator.Validate
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{
		db:       db,
		validate: validator.New(),
	}
}

// Slugify derives a URL-safe slug from a title: lowercase, whitespace runs
// collapsed to single hyphens. Slugs are computed once at creation and never
// regenerated on update.
func Slugify(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "-")
}

// CreatePost persists a new post authored by the caller.
func (s *PostService) CreatePost(authorID string, input models.CreatePostInput) (models.Post, error) {
	if err := s.validate.Struct(input); err != nil {
		return models.Post{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	post := models.Post{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Content:   input.Content,
		Slug:      Slugify(input.Title),
		Category:  input.Category,
		Author:    authorID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		"INSERT INTO posts(id, title, content, slug, category, author, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		post.ID, post.Title, post.Content, post.Slug, post.Category, post.Author, post.CreatedAt,
	)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return post, nil
}

// GetPosts lists posts, optionally filtered by category, paginated with a
// 1-indexed page. No total count is computed.
func (s *PostService) GetPosts(category string, page, limit int) ([]models.Post, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := "SELECT id, title, content, slug, category, author, created_at FROM posts"
	args := []interface{}{}
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// GetPostByID retrieves a single post by its ID.
func (s *PostService) GetPostByID(id string) (models.Post, error) {
	row := s.db.QueryRow("SELECT id, title, content, slug, category, author, created_at FROM posts WHERE id = ?", id)
	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}

// UpdatePost merges the allow-listed fields into the caller's own post.
// Fields absent from the input keep their stored value.
func (s *PostService) UpdatePost(id, callerID string, input models.UpdatePostInput) (models.Post, error) {
	post, err := s.GetPostByID(id)
	if err != nil {
		return models.Post{}, err
	}
	if post.Author != callerID {
		return models.Post{}, ErrForbidden
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Category != nil {
		post.Category = *input.Category
	}

	_, err = s.db.Exec(
		"UPDATE posts SET title = ?, content = ?, category = ? WHERE id = ?",
		post.Title, post.Content, post.Category, id,
	)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return post, nil
}

// DeletePost removes the caller's own post.
func (s *PostService) DeletePost(id, callerID string) error {
	post, err := s.GetPostByID(id)
	if err != nil {
		return err
	}
	if post.Author != callerID {
		return ErrForbidden
	}

	_, err = s.db.Exec("DELETE FROM posts WHERE id = ?", id)
	return err
}

func scanPost(scanner interface{ Scan(...interface{}) error }) (models.Post, error) {
	var post models.Post
	var category sql.NullString
	err := scanner.Scan(&post.ID, &post.Title, &post.Content, &post.Slug, &category, &post.Author, &post.CreatedAt)
	if err != nil {
		return post, err
	}
	post.Category = category.String
	return post, nil
}
