package enum

// CustomerSource tells where a merged customer row came from.
// Service rows are real customer records, sale rows are free-text names.
type CustomerSource string

const (
	CustomerSourceService CustomerSource = "service"
	CustomerSourceSale    CustomerSource = "sale"
)

// ActivityType labels an entry of the dashboard activity feed
type ActivityType string

const (
	ActivityTypeService ActivityType = "service"
	ActivityTypeSale    ActivityType = "sale"
)
