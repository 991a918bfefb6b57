package stepflow

import "testing"

func TestCancellationToken(t *testing.T) {
	t.Run("Hierarchy", func(t *testing.T) {
		root := NewCancellationToken()
		child := root.Fork()
		grandchild := child.Fork()
		sibling := root.Fork()

		child.Cancel()

		if root.CancelRequested() {
			t.Error("canceling a child canceled its parent")
		}
		if !child.CancelRequested() || !grandchild.CancelRequested() {
			t.Error("cancellation did not reach the subtree")
		}
		if sibling.CancelRequested() {
			t.Error("cancellation leaked to a sibling")
		}

		root.Cancel()

		if !sibling.CancelRequested() {
			t.Error("canceling the root did not reach a child")
		}
	})
	t.Run("ForkAfterCancel", func(t *testing.T) {
		root := NewCancellationToken()
		root.Cancel()
		if !root.Fork().CancelRequested() {
			t.Error("a child forked from a canceled token should be canceled")
		}
	})
}
