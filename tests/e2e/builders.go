package e2e

import (
	"fmt"

	"github.com/light-bringer/classfin-service/internal/app/registration/batch"
)

// LineBuilder helps create registration records for tests with a fluent interface
type LineBuilder struct {
	rec batch.LineRecord
}

// NewLineBuilder creates a new builder for a single individual seat in the given class
func NewLineBuilder(classID string) *LineBuilder {
	return &LineBuilder{rec: batch.LineRecord{
		Class:           classID,
		AttendeeName:    "Test Attendee",
		ParticipantType: "indi",
	}}
}

// WithID sets the line id
func (b *LineBuilder) WithID(id string) *LineBuilder {
	b.rec.ID = id
	return b
}

// Corporate turns the line into a corporate seat block
func (b *LineBuilder) Corporate(company string, seats int) *LineBuilder {
	b.rec.ParticipantType = "corp"
	b.rec.Company = company
	b.rec.AttendeeName = ""
	b.rec.Seats = &seats
	return b
}

// WithPrice overrides the class list price
func (b *LineBuilder) WithPrice(price string) *LineBuilder {
	b.rec.Price = price
	return b
}

// WithChannel sets the source channel
func (b *LineBuilder) WithChannel(channel string) *LineBuilder {
	b.rec.Channel = channel
	return b
}

// WithPromotions attaches promotions by id
func (b *LineBuilder) WithPromotions(ids ...string) *LineBuilder {
	b.rec.Promotions = append(b.rec.Promotions, ids...)
	return b
}

// PaidOn marks the line paid on the given date
func (b *LineBuilder) PaidOn(date string) *LineBuilder {
	b.rec.PaymentStatus = "paid"
	b.rec.PaymentDate = date
	return b
}

// DueOn sets the payment due date
func (b *LineBuilder) DueOn(date string) *LineBuilder {
	b.rec.DueDate = date
	return b
}

// WithDocument sets the billing document status
func (b *LineBuilder) WithDocument(status string) *LineBuilder {
	b.rec.DocumentStatus = status
	return b
}

// ArchivedOn archives the line
func (b *LineBuilder) ArchivedOn(date string) *LineBuilder {
	b.rec.ArchivedAt = date
	return b
}

// Build returns the line record
func (b *LineBuilder) Build() batch.LineRecord {
	return b.rec
}

// BatchBuilder assembles a whole batch document
type BatchBuilder struct {
	doc batch.Document
}

// NewBatchBuilder creates an empty batch
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{}
}

// WithClass adds a class
func (b *BatchBuilder) WithClass(id, date, price string) *BatchBuilder {
	b.doc.Classes = append(b.doc.Classes, batch.ClassRecord{ID: id, Title: id, Date: date, Price: price})
	return b
}

// WithPromotion adds an active promotion
func (b *BatchBuilder) WithPromotion(id, kind string, value int) *BatchBuilder {
	b.doc.Promotions = append(b.doc.Promotions, batch.PromotionRecord{
		ID:    id,
		Name:  id,
		Kind:  kind,
		Value: fmt.Sprint(value),
	})
	return b
}

// WithLines adds line records
func (b *BatchBuilder) WithLines(lines ...*LineBuilder) *BatchBuilder {
	for _, l := range lines {
		b.doc.Lines = append(b.doc.Lines, l.Build())
	}
	return b
}

// Build returns the batch document
func (b *BatchBuilder) Build() batch.Document {
	return b.doc
}
