package model

// CompanySettings is the dealer's profile printed on every receipt.
// PrimaryColor and Theme are persisted for the UI but are opaque here.
type CompanySettings struct {
	CompanyName  string `json:"companyName"`
	OwnerName    string `json:"ownerName"`
	Address      string `json:"address"`
	Email        string `json:"email"`
	Website      string `json:"website"`
	TaxID        string `json:"taxId"`
	LogoURL      string `json:"logoUrl,omitempty"` // data URL
	PrimaryColor string `json:"primaryColor"`
	Theme        string `json:"theme"`
}

func DefaultSettings() CompanySettings {
	return CompanySettings{
		PrimaryColor: "#0f172a",
		Theme:        "system",
	}
}

// DisplayName falls back to the historical shop name when the profile has
// not been filled in yet, matching what the receipts always printed.
func (s CompanySettings) DisplayName() string {
	if s.CompanyName != "" {
		return s.CompanyName
	}
	return "NERO Collectibles"
}
