package coverage

import (
	"strings"

	"github.com/covercheck-dev/covercheck/internal/model"
)

// tier2Keywords mark savings banks, mutual-finance institutions, credit
// unions and cooperatives. Checked before the bank keyword: "저축은행"
// contains "은행" and must not classify as a commercial bank.
var tier2Keywords = []string{
	"저축은행", "상호", "신협", "신용협동", "새마을금고", "농협", "수협", "축협", "산림조합",
}

// bankKeyword marks general commercial banks.
const bankKeyword = "은행"

// TierOf classifies an institution by name keywords. This is a reporting
// heuristic over display names, not a regulatory determination; unrecognized
// names (brokerages, fintechs) fall back to TierOther.
func TierOf(institution string) model.Tier {
	name := strings.ToLower(institution)
	for _, kw := range tier2Keywords {
		if strings.Contains(name, kw) {
			return model.Tier2
		}
	}
	if strings.Contains(name, bankKeyword) {
		return model.Tier1
	}
	return model.TierOther
}
