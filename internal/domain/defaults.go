package domain

// Набор по умолчанию отдаётся только при холодном старте, когда кэш ещё ни разу
// не заполнялся, а бэкенд недоступен. Функции возвращают новые срезы на каждый вызов.

func DefaultProducts() []Product {
	return []Product{
		{ID: "p001", Name: "Royal Canin Kitten 2kg"},
		{ID: "p002", Name: "Meow Mix Adult Cat 1kg"},
		{ID: "p003", Name: "Frontline Plus Cat"},
		{ID: "p004", Name: "Hills Science Diet Dog Food 5kg"},
		{ID: "p005", Name: "Advantage II Flea Treatment"},
		{ID: "p006", Name: "Pet Safe Nail Clippers"},
		{ID: "p007", Name: "Purina Pro Plan Kitten Food"},
	}
}

func DefaultBatches() []Batch {
	return []Batch{
		{ID: "b001", Name: "RC-2024-A", ProductID: "p001", ExpiryDate: "2025-06-15"},
		{ID: "b002", Name: "RC-2024-B", ProductID: "p001", ExpiryDate: "2025-08-20"},
		{ID: "b003", Name: "MM-2024-A", ProductID: "p002", ExpiryDate: "2025-04-10"},
		{ID: "b004", Name: "FP-2024-A", ProductID: "p003", ExpiryDate: "2025-12-31"},
		{ID: "b005", Name: "HD-2024-A", ProductID: "p004", ExpiryDate: "2025-09-15"},
		{ID: "b006", Name: "AD-2024-A", ProductID: "p005", ExpiryDate: "2025-07-30"},
	}
}

func DefaultDashboardStats() DashboardStats {
	return DashboardStats{}
}
