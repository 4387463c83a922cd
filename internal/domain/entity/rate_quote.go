package entity

import (
	"fmt"
	"strconv"
	"time"
)

// RateQuote represents one currency's buy/sell quote on a calendar date
type RateQuote struct {
	Currency string    `json:"currency"`
	Date     time.Time `json:"date"`
	Sale     float64   `json:"sale"`
	Buy      float64   `json:"buy"`
}

// QuoteDateFormat is the calendar date layout used by the rate source and
// in rendered reports.
const QuoteDateFormat = "02.01.2006"

// Render formats the quote as one report block.
func (q *RateQuote) Render() string {
	return fmt.Sprintf("%s, Course %s:\nSelling %s, Buy %s\n",
		q.Date.Format(QuoteDateFormat),
		q.Currency,
		strconv.FormatFloat(q.Sale, 'f', -1, 64),
		strconv.FormatFloat(q.Buy, 'f', -1, 64))
}
