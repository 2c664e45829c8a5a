package models

// ExampleLog returns the reference temporal network: node e mediates
// between c,a,f,g,b with a strong c->e->f preference, and step 14 carries
// two simultaneous interactions.
func ExampleLog() *TemporalEdgeLog {
	l := NewTemporalEdgeLog()
	for _, row := range []struct {
		t              int
		source, target string
	}{
		{1, "c", "e"}, {2, "e", "f"},
		{3, "a", "e"}, {4, "e", "g"},
		{5, "c", "e"}, {6, "e", "f"},
		{7, "a", "e"}, {8, "e", "g"},
		{9, "c", "e"}, {10, "e", "f"},
		{11, "f", "e"}, {12, "e", "b"},
		{13, "e", "b"},
		{14, "g", "e"}, {14, "c", "e"},
		{15, "e", "f"},
		{16, "b", "e"}, {17, "e", "g"},
		{18, "c", "e"}, {19, "e", "f"},
		{20, "c", "e"}, {21, "e", "f"},
	} {
		l.Append(row.t, row.source, row.target)
	}
	return l
}
