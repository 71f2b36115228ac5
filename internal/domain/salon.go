package domain

type SalonInfo struct {
	Name                string `json:"name"`
	Address             string `json:"address"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	OpeningTime         string `json:"openingTime"`
	ClosingTime         string `json:"closingTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	Timezone            string `json:"timezone"`
}
