package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Gunvolt24/vetstock/internal/domain"
	"github.com/Gunvolt24/vetstock/internal/webhook"
)

// ViewAll — фильтр «все товары» для просмотра остатков и сроков.
const ViewAll = "all"

type addProductPayload struct {
	Action  string        `json:"action"`
	Product productRecord `json:"product"`
}

type productRecord struct {
	ID string `json:"id"`
	domain.NewProduct
}

type logBatchPayload struct {
	Action string      `json:"action"`
	Batch  batchRecord `json:"batch"`
}

type batchRecord struct {
	ID string `json:"id"`
	domain.NewBatch
}

type updateStockPayload struct {
	Action  string               `json:"action"`
	Updates []domain.StockUpdate `json:"updates"`
}

type viewPayload struct {
	Action  string `json:"action"`
	Product string `json:"product"`
}

// AddProduct — новый товар; id генерируется на клиенте.
// При успехе кэши сбрасываются и событие уходит в шину.
func (s *InventoryService) AddProduct(ctx context.Context, p domain.NewProduct) domain.Result {
	payload := addProductPayload{
		Action:  domain.ActionAddProduct.String(),
		Product: productRecord{ID: s.newID(), NewProduct: p},
	}
	return s.mutate(ctx, domain.ActionAddProduct, webhook.JSON(payload))
}

// LogBatch — новая партия. С фото этикетки уходит multipart, без него JSON.
func (s *InventoryService) LogBatch(ctx context.Context, b domain.NewBatch, image *domain.Attachment) domain.Result {
	id := s.newID()
	if image == nil {
		payload := logBatchPayload{
			Action: domain.ActionLogBatch.String(),
			Batch:  batchRecord{ID: id, NewBatch: b},
		}
		return s.mutate(ctx, domain.ActionLogBatch, webhook.JSON(payload))
	}

	fields := map[string]string{
		"action":     domain.ActionLogBatch.String(),
		"id":         id,
		"productId":  b.ProductID,
		"batchName":  b.BatchName,
		"quantity":   strconv.Itoa(b.Quantity),
		"expiryDate": b.ExpiryDate,
	}
	for k, v := range map[string]string{"receivedAt": b.ReceivedAt, "receivedBy": b.ReceivedBy, "notes": b.Notes} {
		if v != "" {
			fields[k] = v
		}
	}
	return s.mutate(ctx, domain.ActionLogBatch, webhook.Multipart{
		Fields: fields,
		Files:  []webhook.File{imageFile(*image)},
	})
}

// UpdateStock — установить остаток товара (operation по умолчанию set).
func (s *InventoryService) UpdateStock(ctx context.Context, u domain.StockUpdate) domain.Result {
	if u.Operation == "" {
		u.Operation = "set"
	}
	payload := updateStockPayload{
		Action:  domain.ActionUpdateStock.String(),
		Updates: []domain.StockUpdate{u},
	}
	return s.mutate(ctx, domain.ActionUpdateStock, webhook.JSON(payload))
}

// ViewStock — отчёт об остатках по товару (пустой id → все).
func (s *InventoryService) ViewStock(ctx context.Context, productID string) domain.Result {
	return s.view(ctx, domain.ActionViewStock, productID)
}

// ViewExpiry — отчёт о сроках годности по товару (пустой id → все).
func (s *InventoryService) ViewExpiry(ctx context.Context, productID string) domain.Result {
	return s.view(ctx, domain.ActionViewExpiry, productID)
}

// ProcessOCR — распознавание фото этикетки. Догадка nil, если бэкенд ответил
// в неожиданном виде; сам результат при этом остаётся успешным.
func (s *InventoryService) ProcessOCR(ctx context.Context, image domain.Attachment) (*domain.OCRGuess, domain.Result) {
	res := s.dispatcher.Submit(ctx, domain.ActionOCRProcess, webhook.Multipart{
		Fields: map[string]string{"action": domain.ActionOCRProcess.String()},
		Files:  []webhook.File{imageFile(image)},
	})
	if !res.Success {
		return nil, res
	}

	obj := webhook.UnwrapObject(res.Data)
	if len(obj) == 0 {
		return nil, res
	}
	var guess domain.OCRGuess
	if err := json.Unmarshal(obj, &guess); err != nil {
		s.log.Warnf(ctx, "ocr response is not a guess: %v", err)
		return nil, res
	}
	return &guess, res
}

// Submit — отправка произвольного JSON по имени действия.
// Поле action в теле проставляется, если его нет; мутации сбрасывают кэши.
func (s *InventoryService) Submit(ctx context.Context, name string, body json.RawMessage) domain.Result {
	action, err := domain.ParseAction(name)
	if err != nil {
		return domain.Failed(domain.KindUnknownAction, err.Error())
	}

	var payload map[string]any
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return domain.Failed(domain.KindEncode, fmt.Sprintf("webhook %s: payload must be a JSON object: %v", action, err))
		}
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if _, ok := payload["action"]; !ok {
		payload["action"] = action.String()
	}

	if action.Mutating() {
		return s.mutate(ctx, action, webhook.JSON(payload))
	}
	return s.dispatcher.Submit(ctx, action, webhook.JSON(payload))
}

func (s *InventoryService) view(ctx context.Context, action domain.Action, productID string) domain.Result {
	if strings.TrimSpace(productID) == "" {
		productID = ViewAll
	}
	return s.dispatcher.Submit(ctx, action, webhook.JSON(viewPayload{Action: action.String(), Product: productID}))
}

func (s *InventoryService) mutate(ctx context.Context, action domain.Action, payload domain.Payload) domain.Result {
	res := s.dispatcher.Submit(ctx, action, payload)
	if !res.Success {
		s.log.Warnf(ctx, "%s failed: %s", action, res.Error)
		return res
	}
	s.afterMutation(ctx, action)
	s.log.Infof(ctx, "%s submitted, caches invalidated", action)
	return res
}

func imageFile(a domain.Attachment) webhook.File {
	name := a.FileName
	if name == "" {
		name = "image"
	}
	return webhook.File{Field: "image", FileName: name, ContentType: a.ContentType, Data: a.Data}
}
