package cta

import "github.com/sourcegraph/conc/panics"

func unwrapPanic(r any) any {
	if rec, ok := r.(*panics.Recovered); ok {
		return rec.Value
	}
	return r
}
