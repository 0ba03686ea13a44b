package table

// Columns is the fixed schema of the intermediate table, the sole contract
// between the extraction and normalization pipelines.
var Columns = []string{
	"rank",
	"title",
	"author",
	"format",
	"price_gbp",
	"rating",
	"review_count",
	"product_url",
	"image_url",
	"description",
}

// Row is one record keyed by column name. Externally supplied tables may
// carry extra columns; readers keep them but consumers ignore anything
// outside Columns.
type Row map[string]string
