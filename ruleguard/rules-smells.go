package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Consecutive guards with the same return can be merged with ||.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic`)
}

// blocking flags calls that ignore the per-attempt generation deadline.
func blocking(m dsl.Matcher) {
	m.Match(`http.DefaultClient.$_($*_)`, `http.Get($*_)`, `http.Post($*_)`).
		Where(!m.File().Name.Matches(`_test\.go$`)).
		Report(`use a client with a timeout and a request built with http.NewRequestWithContext`)

	m.Match(`time.Sleep($_)`).
		Where(!m.File().Name.Matches(`_test\.go$`)).
		Report(`time.Sleep ignores cancellation; select on ctx.Done() and a timer instead`)

	m.Match(`context.Background()`).
		Where(m.File().PkgPath.Matches(`/internal/domain/`)).
		Report(`domain code should take a context from its caller`)
}

// logging keeps output on the structured logger.
func logging(m dsl.Matcher) {
	m.Match(`fmt.Println($*_)`, `fmt.Printf($*_)`, `log.Printf($*_)`, `log.Println($*_)`).
		Where(m.File().PkgPath.Matches(`/internal/`) && !m.File().Name.Matches(`_test\.go$`)).
		Report(`use the injected *zap.Logger instead of printing`)
}
