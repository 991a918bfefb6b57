package stepflow

// A CancellationToken is a cooperative, hierarchical abort flag.
//
// Tokens form a tree: [CancellationToken.Fork] derives a child that keeps
// a link to its parent. Canceling a token cancels its whole subtree, and
// there is no way back.
//
// Runners check [CancellationToken.CancelRequested] when they are polled.
// Cancellation never interrupts a poll that has already begun.
type CancellationToken struct {
	parent   *CancellationToken
	canceled bool
}

// NewCancellationToken creates a root token.
func NewCancellationToken() *CancellationToken {
	return new(CancellationToken)
}

// Fork creates a child token of t.
func (t *CancellationToken) Fork() *CancellationToken {
	return &CancellationToken{parent: t}
}

// Cancel cancels t and, transitively, every token forked from it.
func (t *CancellationToken) Cancel() {
	t.canceled = true
}

// CancelRequested reports whether t or any of its ancestors has been
// canceled.
func (t *CancellationToken) CancelRequested() bool {
	for ; t != nil; t = t.parent {
		if t.canceled {
			return true
		}
	}
	return false
}
