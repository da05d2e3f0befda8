package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fitness-service/internal/api/dto"
	"github.com/spec-kit/fitness-service/internal/service"
)

// PostsHandler serves the social feed: posts, comments and likes.
type PostsHandler struct {
	service *service.SocialService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(socialService *service.SocialService) *PostsHandler {
	return &PostsHandler{service: socialService}
}

// List GET /posts.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	posts, err := h.service.ListPosts(c.UserContext(), pageFrom(c))
	if err != nil {
		return err
	}
	out := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, dto.NewPostResponse(&posts[i]))
	}
	return c.JSON(data(out))
}

// Get GET /posts/:id.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	post, err := h.service.GetPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewPostResponse(post)))
}

// Create POST /posts.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.PostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.service.CreatePost(c.UserContext(), principal.UserID, service.PostInput{
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewPostResponse(post)))
}

// Update PUT /posts/:id.
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	var req dto.PostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.service.UpdatePost(c.UserContext(), c.Params("id"), service.PostInput{
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewPostResponse(post)))
}

// Delete DELETE /posts/:id.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeletePost(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListComments GET /posts/:id/comments.
func (h *PostsHandler) ListComments(c *fiber.Ctx) error {
	comments, err := h.service.ListComments(c.UserContext(), c.Params("id"), pageFrom(c))
	if err != nil {
		return err
	}
	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, dto.NewCommentResponse(&comments[i]))
	}
	return c.JSON(data(out))
}

// AddComment POST /posts/:id/comments.
func (h *PostsHandler) AddComment(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.service.AddComment(c.UserContext(), c.Params("id"), principal.UserID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewCommentResponse(comment)))
}

// DeleteComment DELETE /comments/:id.
func (h *PostsHandler) DeleteComment(c *fiber.Ctx) error {
	if err := h.service.DeleteComment(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ToggleLike POST /posts/:id/likes.
func (h *PostsHandler) ToggleLike(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	res, err := h.service.ToggleLike(c.UserContext(), c.Params("id"), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(data(res))
}
