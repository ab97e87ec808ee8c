package mapsearch

// frontier is a best-first worklist of not-yet-expanded open subproblems,
// ordered by descending (ub-lb) gap: the subproblem with the most to gain
// from being resolved is expanded next. Ties break by ascending fingerprint
// so that two runs over the same input expand subproblems in the same
// order.
type frontier []*subproblem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	gi := f[i].ub - f[i].lb
	gj := f[j].ub - f[j].lb
	if gi != gj {
		return gi > gj // larger gap first
	}
	return f[i].fingerprint < f[j].fingerprint
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(*subproblem))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}
