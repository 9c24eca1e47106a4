package locationdirectory

// Location модель локации салона из каталога
type Location struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Timezone   string   `json:"timezone"`
	IsActive   bool     `json:"isActive"`
	ManagerIDs []string `json:"managerIds"`
}

// Service модель услуги из каталога
type Service struct {
	ID              string   `json:"id"`
	LocationID      string   `json:"locationId"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
	Category        string   `json:"category,omitempty"`
}

// HasManager проверяет, что пользователь входит в список менеджеров локации
func (l *Location) HasManager(customerID string) bool {
	for _, id := range l.ManagerIDs {
		if id == customerID {
			return true
		}
	}
	return false
}
