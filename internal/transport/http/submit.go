package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Gunvolt24/vetstock/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	// MaxImageBytes — предел размера фото этикетки.
	MaxImageBytes = 10 << 20
	// MaxBodyBytes — предел тела отправки: фото плюс поля формы.
	MaxBodyBytes = MaxImageBytes + 1<<20
)

var errNoImage = errors.New("image file is required")

// resultStatus — HTTP-статус для результата отправки.
func resultStatus(res domain.Result) int {
	switch {
	case res.Success:
		return http.StatusOK
	case res.Kind == domain.KindUnknownAction, res.Kind == domain.KindEncode:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) writeResult(c *gin.Context, res domain.Result) {
	c.JSON(resultStatus(res), res)
}

// badRequest — 400, либо 413, если тело упёрлось в limitBody.
func (h *Handler) badRequest(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, domain.Failed(domain.KindEncode,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)))
		return
	}
	c.JSON(http.StatusBadRequest, domain.Failed(domain.KindEncode, err.Error()))
}

// limitBody — ограничивает чтение тела запроса n байтами.
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

func (h *Handler) addProduct(c *gin.Context) {
	var p domain.NewProduct
	if err := c.ShouldBindJSON(&p); err != nil {
		h.badRequest(c, err)
		return
	}
	h.writeResult(c, h.service.AddProduct(c.Request.Context(), p))
}

// logBatch — JSON или multipart с необязательным полем image.
func (h *Handler) logBatch(c *gin.Context) {
	var (
		b     domain.NewBatch
		image *domain.Attachment
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		var err error
		if b, err = batchFromForm(c); err != nil {
			h.badRequest(c, err)
			return
		}
		att, err := readImage(c)
		switch {
		case err == nil:
			image = att
		case !errors.Is(err, errNoImage):
			h.badRequest(c, err)
			return
		}
	} else if err := c.ShouldBindJSON(&b); err != nil {
		h.badRequest(c, err)
		return
	}

	h.writeResult(c, h.service.LogBatch(c.Request.Context(), b, image))
}

func (h *Handler) updateStock(c *gin.Context) {
	var u domain.StockUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		h.badRequest(c, err)
		return
	}
	h.writeResult(c, h.service.UpdateStock(c.Request.Context(), u))
}

type viewRequest struct {
	Product string `json:"product"`
}

func (h *Handler) viewStock(c *gin.Context) {
	req, ok := h.bindView(c)
	if !ok {
		return
	}
	h.writeResult(c, h.service.ViewStock(c.Request.Context(), req.Product))
}

func (h *Handler) viewExpiry(c *gin.Context) {
	req, ok := h.bindView(c)
	if !ok {
		return
	}
	h.writeResult(c, h.service.ViewExpiry(c.Request.Context(), req.Product))
}

// bindView — пустое тело означает «все товары».
func (h *Handler) bindView(c *gin.Context) (viewRequest, bool) {
	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(c, err)
		return req, false
	}
	return req, true
}

func (h *Handler) processOCR(c *gin.Context) {
	image, err := readImage(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	guess, res := h.service.ProcessOCR(c.Request.Context(), *image)
	c.JSON(resultStatus(res), gin.H{"success": res.Success, "data": res.Data, "error": res.Error, "guess": guess})
}

func (h *Handler) submitAction(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	h.writeResult(c, h.service.Submit(c.Request.Context(), c.Param("action"), json.RawMessage(body)))
}

func batchFromForm(c *gin.Context) (domain.NewBatch, error) {
	b := domain.NewBatch{
		ProductID:  c.PostForm("productId"),
		BatchName:  c.PostForm("batchName"),
		ExpiryDate: c.PostForm("expiryDate"),
		ReceivedAt: c.PostForm("receivedAt"),
		ReceivedBy: c.PostForm("receivedBy"),
		Notes:      c.PostForm("notes"),
	}
	if q := c.PostForm("quantity"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return b, errors.New("quantity must be an integer")
		}
		b.Quantity = n
	}
	return b, nil
}

// readImage — файл из поля image multipart-формы.
func readImage(c *gin.Context) (*domain.Attachment, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, errNoImage
		}
		return nil, err
	}
	if fh.Size > MaxImageBytes {
		return nil, errors.New("image is too large")
	}
	data, err := readFormFile(fh)
	if err != nil {
		return nil, err
	}
	return &domain.Attachment{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
