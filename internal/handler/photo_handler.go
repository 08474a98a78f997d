package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"photoshare/internal/logging"
	"photoshare/internal/service"
)

// PhotoHandler serves photos and comment submission.
type PhotoHandler struct {
	photos      service.PhotoService
	aggregation service.AggregationService
	log         logging.Logger
}

// NewPhotoHandler creates a new photo handler.
func NewPhotoHandler(photos service.PhotoService, aggregation service.AggregationService, log logging.Logger) *PhotoHandler {
	return &PhotoHandler{photos: photos, aggregation: aggregation, log: log}
}

// CommentRequest represents a new comment.
type CommentRequest struct {
	Comment string `json:"comment"`
}

// UploadResponse identifies a newly uploaded photo.
type UploadResponse struct {
	ID     string `json:"_id"`
	UserID string `json:"user_id"`
}

// PhotosOfUser godoc
// @Summary List a user's photos with resolved comment authors
// @Tags photos
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} model.PhotoDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /photosOfUser/{id} [get]
func (h *PhotoHandler) PhotosOfUser(c echo.Context) error {
	ownerID, err := pathID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}

	ctx := c.Request().Context()
	photos, err := h.photos.ListPhotosByOwner(ctx, ownerID)
	if err != nil {
		return fail(c, h.log, err)
	}
	details, err := h.aggregation.ResolvePhotos(ctx, photos)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, details)
}

// Upload godoc
// @Summary Upload a photo
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param uploadedphoto formData file true "Image file"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /photos/new [post]
func (h *PhotoHandler) Upload(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return fail(c, h.log, err)
	}

	fileHeader, err := c.FormFile("uploadedphoto")
	if err != nil {
		return badRequest("Error uploading file", "UPLOAD_ERROR")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return badRequest("Error uploading file", "UPLOAD_ERROR")
	}
	defer file.Close()

	photo, err := h.photos.Upload(c.Request().Context(), session.UserID, service.Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		return fail(c, h.log, err)
	}

	return c.JSON(http.StatusOK, UploadResponse{
		ID:     photo.ID.String(),
		UserID: photo.UserID.String(),
	})
}

// GetPhoto godoc
// @Summary Get a photo with resolved comment authors
// @Tags photos
// @Produce json
// @Param photoId path string true "Photo ID"
// @Success 200 {object} model.PhotoDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /photo/{photoId} [get]
func (h *PhotoHandler) GetPhoto(c echo.Context) error {
	photoID, err := pathID(c, "photoId")
	if err != nil {
		return fail(c, h.log, err)
	}

	ctx := c.Request().Context()
	photo, err := h.photos.GetPhoto(ctx, photoID)
	if err != nil {
		return fail(c, h.log, err)
	}
	detail, err := h.aggregation.ResolveCommentAuthors(ctx, photo)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// AddComment godoc
// @Summary Comment on a photo
// @Tags photos
// @Accept json
// @Produce json
// @Param photoId path string true "Photo ID"
// @Param request body CommentRequest true "Comment"
// @Success 200 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /commentsOfPhoto/{photoId} [post]
func (h *PhotoHandler) AddComment(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	photoID, err := pathID(c, "photoId")
	if err != nil {
		return fail(c, h.log, err)
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}

	comment, err := h.photos.AppendComment(c.Request().Context(), photoID, session.UserID, req.Comment)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, comment)
}
