package ports

import (
	"fmt"
	"strconv"
	"strings"
)

// GlobalScope selects every active representative.
const GlobalScope = "global"

const representativePrefix = "representative:"

// Scope is a scope token as understood by the bundled ledger sources.
type Scope struct {
	// RepresentativeID is set for "representative:<id>"; zero means global.
	RepresentativeID int64
}

func (s Scope) IsGlobal() bool { return s.RepresentativeID == 0 }

func (s Scope) String() string {
	if s.IsGlobal() {
		return GlobalScope
	}
	return representativePrefix + strconv.FormatInt(s.RepresentativeID, 10)
}

// ParseScope interprets "global" and "representative:<id>". Anything else wraps
// ErrUnsupportedScope.
func ParseScope(token string) (Scope, error) {
	if token == GlobalScope {
		return Scope{}, nil
	}
	if rest, ok := strings.CutPrefix(token, representativePrefix); ok {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err == nil && id > 0 {
			return Scope{RepresentativeID: id}, nil
		}
	}
	return Scope{}, fmt.Errorf("%w: %q", ErrUnsupportedScope, token)
}
