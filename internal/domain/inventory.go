package domain

import "time"

// Product — товар каталога клиники.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Batch — партия товара со сроком годности.
type Batch struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	BatchNumber string `json:"batchNumber,omitempty"`
	ExpiryDate  string `json:"expiryDate"`
	Quantity    int    `json:"quantity,omitempty"`
	Location    string `json:"location,omitempty"`
}

// ExpiryDateLayout — формат даты годности, который отдаёт бэкенд.
const ExpiryDateLayout = "2006-01-02"

// Expiry — дата годности; ok=false, если дату не удалось разобрать.
func (b *Batch) Expiry() (time.Time, bool) {
	if b.ExpiryDate == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(ExpiryDateLayout, b.ExpiryDate); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, b.ExpiryDate); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// StockLevel — текущий остаток товара.
type StockLevel struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName,omitempty"`
	CurrentStock int    `json:"currentStock"`
	MinimumStock int    `json:"minimumStock"`
	Status       string `json:"status,omitempty"` // low|normal|out
}

// Low — остаток на минимуме или ниже.
func (s *StockLevel) Low() bool { return s.CurrentStock <= s.MinimumStock }

// Out — товара нет.
func (s *StockLevel) Out() bool { return s.CurrentStock == 0 }

// DashboardStats — счётчики для главной панели.
type DashboardStats struct {
	TotalProducts   int  `json:"totalProducts"`
	ExpiringBatches int  `json:"expiringBatches"`
	LowStockItems   *int `json:"lowStockItems,omitempty"`
	OutOfStockItems *int `json:"outOfStockItems,omitempty"`
}

// LiveData — списки товаров и партий одним снимком.
type LiveData struct {
	Products []Product `json:"products"`
	Batches  []Batch   `json:"batches"`
}

// NewProduct — данные формы добавления товара.
type NewProduct struct {
	Name         string `json:"name"`
	SKU          string `json:"skuCode,omitempty"`
	Category     string `json:"category,omitempty"`
	Description  string `json:"description,omitempty"`
	MinimumStock int    `json:"minimumStock,omitempty"`
}

// NewBatch — данные формы регистрации новой партии.
type NewBatch struct {
	ProductID  string `json:"productId"`
	BatchName  string `json:"batchName"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiryDate"`
	ReceivedAt string `json:"receivedAt,omitempty"`
	ReceivedBy string `json:"receivedBy,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// StockUpdate — изменение остатка товара.
type StockUpdate struct {
	ProductID string `json:"productId"`
	BatchID   string `json:"batchId,omitempty"`
	NewStock  int    `json:"newStock"`
	Operation string `json:"operation,omitempty"` // set|add|remove, по умолчанию set
	Reason    string `json:"reason,omitempty"`
}

// Attachment — файл для multipart-отправки (фото этикетки и т.п.).
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// OCRGuess — догадка OCR по фото этикетки; любое поле может отсутствовать.
type OCRGuess struct {
	ProductName *string `json:"productName,omitempty"`
	BatchName   *string `json:"batchName,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	ExpiryDate  *string `json:"expiryDate,omitempty"`
}

// ApplyTo — переносит в форму только распознанные поля, остальные не трогает.
// Название товара сопоставляется с каталогом вызывающим кодом, поэтому здесь не применяется.
func (g *OCRGuess) ApplyTo(b *NewBatch) {
	if g == nil || b == nil {
		return
	}
	if g.BatchName != nil && *g.BatchName != "" {
		b.BatchName = *g.BatchName
	}
	if g.Quantity != nil && *g.Quantity > 0 {
		b.Quantity = *g.Quantity
	}
	if g.ExpiryDate != nil && *g.ExpiryDate != "" {
		b.ExpiryDate = *g.ExpiryDate
	}
}
