package enum

import (
	"encoding/json"
	"strings"
)

// DiscountType selects how an invoice discount is applied
type DiscountType int

const (
	DiscountTypeFlat    DiscountType = 0
	DiscountTypePercent DiscountType = 1
)

func (d DiscountType) String() string {
	names := [...]string{"flat", "percent"}
	if int(d) < 0 || int(d) >= len(names) {
		return "flat"
	}
	return names[d]
}

func (d DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = DiscountType(i)
		return nil
	}
	*d = ParseDiscountType(str)
	return nil
}

// ParseDiscountType maps "percent" (or "percentage", or "1") to percent and
// anything else to flat
func ParseDiscountType(raw string) DiscountType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "percent", "percentage", "1":
		return DiscountTypePercent
	default:
		return DiscountTypeFlat
	}
}
