// Package widget implements instant search over a precomputed post index.
//
// A Widget loads the aggregate index exactly once in Initialize and answers
// every input with an in-memory match, rendering results into a Container:
//
//	results := widget.NewBuffer()
//	w, err := widget.Initialize(ctx, "https://blog.example.com/search.json", results, widget.Config{Fuzzy: true})
//	if err != nil {
//	    return err
//	}
//	w.OnInput("ktn")
//	fmt.Println(results.HTML())
//
// # Failure behavior
//
// A failed index fetch is not fatal: the widget starts with an empty index,
// logs a warning and records the cause in LoadError. Every query then renders
// NoResultsText.
//
// # Escaping
//
// In FormatHTML (the default) every interpolated field is HTML-escaped before
// substitution. FormatText substitutes fields verbatim for terminal output.
//
// # Thread Safety
//
// The index is never mutated after Initialize, so Query may be called from any
// number of goroutines. OnInput serialises writes to the Container.
package widget
