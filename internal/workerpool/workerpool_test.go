package workerpool

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/AstyCo/lazyut/internal/filetree"
	"github.com/AstyCo/lazyut/internal/pathutil"
)

func buildNodes(n int) []*filetree.Node {
	tree := filetree.New("/proj")
	out := make([]*filetree.Node, n)
	for i := 0; i < n; i++ {
		out[i] = tree.AddFile(pathutil.NewRelPath(itoaPath(i)))
	}
	return out
}

func itoaPath(i int) string {
	const digits = "0123456789"
	var out []byte
	if i == 0 {
		out = []byte{'0'}
	}
	for i > 0 {
		out = append([]byte{digits[i%10]}, out...)
		i /= 10
	}
	return "f" + string(out) + ".cpp"
}

func TestRunVisitsEveryNode(t *testing.T) {
	nodes := buildNodes(5)

	var mu sync.Mutex
	visited := make(map[*filetree.Node]bool)

	errs := Run(context.Background(), nodes, 2, func(ctx context.Context, n *filetree.Node) error {
		mu.Lock()
		visited[n] = true
		mu.Unlock()
		return nil
	})

	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if len(visited) != len(nodes) {
		t.Fatalf("expected all %d nodes visited, got %d", len(nodes), len(visited))
	}
}

func TestRunCollectsErrors(t *testing.T) {
	nodes := buildNodes(3)
	boom := errors.New("boom")

	errs := Run(context.Background(), nodes, 1, func(ctx context.Context, n *filetree.Node) error {
		return boom
	})

	if len(errs) == 0 {
		t.Fatal("expected at least one error to be collected")
	}
}

func TestRunWithZeroWidthStillCompletes(t *testing.T) {
	nodes := buildNodes(2)
	var count int
	var mu sync.Mutex

	errs := Run(context.Background(), nodes, 0, func(ctx context.Context, n *filetree.Node) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if count != len(nodes) {
		t.Fatalf("expected %d calls with width<=0 treated as 1, got %d", len(nodes), count)
	}
}

func TestRunWithNoNodesReturnsNil(t *testing.T) {
	errs := Run(context.Background(), nil, 4, func(ctx context.Context, n *filetree.Node) error {
		t.Fatal("fn should never be called with no nodes")
		return nil
	})
	if errs != nil {
		t.Fatalf("expected nil errors, got %v", errs)
	}
}

func TestRunCancelsRemainingWorkAfterFirstError(t *testing.T) {
	nodes := buildNodes(50)
	boom := errors.New("boom")

	var mu sync.Mutex
	processed := 0

	Run(context.Background(), nodes, 1, func(ctx context.Context, n *filetree.Node) error {
		mu.Lock()
		processed++
		mu.Unlock()
		return boom
	})

	mu.Lock()
	defer mu.Unlock()
	if processed == 0 {
		t.Fatal("expected at least one node to be processed")
	}
	if processed == len(nodes) {
		t.Fatal("expected cancellation to stop processing before all nodes ran")
	}
}
