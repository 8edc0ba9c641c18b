package fetcher

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/backyonatan-alt/atlas/backend/internal/model"
)

//go:embed fallback.json
var fallbackJSON []byte

// Fallback returns the bundled catalog used when the live API is unreachable.
// Each call returns a fresh slice sorted by name.
func Fallback() []model.Country {
	var countries []model.Country
	if err := json.Unmarshal(fallbackJSON, &countries); err != nil {
		// fallback.json is compiled in; a decode failure is a build defect.
		panic(fmt.Sprintf("fetcher: invalid fallback.json: %v", err))
	}
	SortByName(countries)
	return countries
}
