// Package advice holds the static travel tips shown next to predictions.
package advice

import (
	"strings"
	"time"

	"github.com/ngmaloney/skycast/internal/models"
)

// Tip is one piece of travel advice
type Tip struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`

	appliesTo func(models.FlightRequest) bool
}

func (t Tip) String() string {
	return t.Title + ": " + t.Body
}

var tips = []Tip{
	{
		ID:    "preferred-airlines",
		Title: "Preferred Airlines",
		Body:  "Delta Air Lines (DL), United Airlines (UA), and American Airlines (AA) generally offer more reliable service and are recommended for a smoother travel experience.",
	},
	{
		ID:    "best-travel-days",
		Title: "Best Travel Days",
		Body:  "To reduce the risk of flight delays and cancelations, consider avoiding travel on Mondays, which tend to experience higher traffic and operational disruptions.",
		appliesTo: func(r models.FlightRequest) bool {
			return !r.FlightDate.IsZero() && r.FlightDate.Weekday() == time.Monday
		},
	},
	{
		ID:    "january-advisory",
		Title: "Monthly Advisory – January",
		Body:  "In January, flights operated by United Airlines (UA) have shown a higher likelihood of cancelations and delays. Choosing Delta or American Airlines during this month may offer a more dependable option.",
		appliesTo: func(r models.FlightRequest) bool {
			return r.FlightDate.Month() == time.January && carrierIs(r, "UA")
		},
	},
	{
		ID:    "airline-reliability",
		Title: "Airline Reliability",
		Body:  "Delta and American Airlines consistently demonstrate lower cancelation rates and are preferred choices, particularly for time-sensitive travel. Conversely, Southwest and Alaska Airlines have shown less reliability in this regard and may be best avoided if schedule certainty is important.",
		appliesTo: func(r models.FlightRequest) bool {
			return carrierIs(r, "WN", "AS")
		},
	},
	{
		ID:    "holiday-travel",
		Title: "Holiday Travel Guidance",
		Body:  "Try to avoid scheduling flights within two days before or five days after major holidays. These peak travel windows often see elevated levels of congestion, leading to increased chances of delays and cancelations.",
	},
	{
		ID:    "tight-schedule",
		Title: "Tight Schedule Tip",
		Body:  "For travelers with tight connections or critical timing, Delta and American Airlines are especially recommended due to their more consistent on-time performance.",
	},
}

// All returns every tip in display order
func All() []Tip {
	out := make([]Tip, len(tips))
	copy(out, tips)
	return out
}

// Relevant returns the tips that speak directly to req, in display order
func Relevant(req models.FlightRequest) []Tip {
	var out []Tip
	for _, t := range tips {
		if t.appliesTo != nil && t.appliesTo(req) {
			out = append(out, t)
		}
	}
	return out
}

func carrierIs(r models.FlightRequest, codes ...string) bool {
	c := strings.ToUpper(strings.TrimSpace(r.Carrier))
	for _, code := range codes {
		if c == code {
			return true
		}
	}
	return false
}
