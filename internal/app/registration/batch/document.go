package batch

// Document is the on-disk YAML shape of a registration batch.
// Dates use the 2006-01-02 layout and money is written as a decimal string or number.
type Document struct {
	Classes    []ClassRecord     `yaml:"classes"`
	Promotions []PromotionRecord `yaml:"promotions"`
	Lines      []LineRecord      `yaml:"lines"`
}

// ClassRecord describes a scheduled class and its list price.
type ClassRecord struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
	Price string `yaml:"price"`
}

// PromotionRecord describes a discount campaign.
type PromotionRecord struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Value  string `yaml:"value"`
	Active *bool  `yaml:"active"`
}

// LineRecord describes one registration seat block. Omitted seats mean 1.
type LineRecord struct {
	ID              string   `yaml:"id"`
	Class           string   `yaml:"class"`
	AttendeeName    string   `yaml:"attendee"`
	Company         string   `yaml:"company"`
	Channel         string   `yaml:"channel"`
	Price           string   `yaml:"price"`
	Seats           *int     `yaml:"seats"`
	ParticipantType string   `yaml:"type"`
	Promotions      []string `yaml:"promotions"`
	PaymentStatus   string   `yaml:"payment_status"`
	DueDate         string   `yaml:"due_date"`
	PaymentDate     string   `yaml:"payment_date"`
	DocumentStatus  string   `yaml:"document_status"`
	ArchivedAt      string   `yaml:"archived_at"`
}
