package dossier

// arrayMutators are Array.prototype methods whose presence in calledMethods
// suggests an array-like value.
var arrayMutators = map[string]bool{
	"push": true, "pop": true, "shift": true, "unshift": true,
	"splice": true, "slice": true, "concat": true, "forEach": true,
	"map": true, "filter": true, "reduce": true, "indexOf": true,
	"includes": true, "join": true, "sort": true, "reverse": true,
	"find": true, "findIndex": true, "flat": true, "flatMap": true,
}

var promiseMethods = map[string]bool{"then": true, "catch": true, "finally": true}

// inferTypeHints derives advisory, non-authoritative type hints from a
// binding's usage summary (§4.2). Hints never affect correctness; they are
// extra context handed to the oracle.
func inferTypeHints(u UsageSummary) []string {
	var hints []string

	if hasAny(u.CalledMethods, arrayMutators) {
		hints = append(hints, "array-like")
	}
	if u.IsAwaited || hasAny(u.CalledMethods, promiseMethods) {
		hints = append(hints, "promise-like")
	}
	if contains(u.MemberReads, "length") {
		hints = append(hints, "array/string-like")
	}
	if u.IsConstructed {
		hints = append(hints, "constructor")
	}
	if u.IsIterated {
		hints = append(hints, "iterable")
	}

	return hints
}

func hasAny(names []string, set map[string]bool) bool {
	for _, n := range names {
		if set[n] {
			return true
		}
	}
	return false
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
