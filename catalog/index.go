package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dchest/siphash"
	"github.com/joshyorko/sakdash/common"
)

const (
	digestKey0 = 0x73616b6461736831
	digestKey1 = 0x636174616c6f6721
)

var (
	ErrDuplicatePath = errors.New("duplicate command path")
	ErrNoTree        = errors.New("backend returned no command tree")
)

// TreeSource fetches the full command tree in one request.
type TreeSource interface {
	CommandTree(ctx context.Context) (*CommandNode, error)
}

// Index maps command paths to nodes of the most recently loaded tree. It is
// empty until a load succeeds and is always either empty or complete.
type Index struct {
	mu     sync.RWMutex
	root   *CommandNode
	nodes  map[string]*CommandNode
	order  []string
	digest uint64
}

func NewIndex() *Index {
	return &Index{
		nodes: make(map[string]*CommandNode),
	}
}

// Load fetches the tree once and publishes it. A failed load leaves the
// previously published state (empty on first load) untouched and is not
// retried.
func (it *Index) Load(ctx context.Context, source TreeSource) error {
	stopwatch := common.Stopwatch("Catalog load took")
	root, err := source.CommandTree(ctx)
	if err == nil && root == nil {
		err = ErrNoTree
	}
	if err != nil {
		common.Error("catalog", err)
		return fmt.Errorf("loading command catalog: %w", err)
	}
	nodes, order, err := flatten(root)
	if err != nil {
		common.Error("catalog", err)
		return fmt.Errorf("loading command catalog: %w", err)
	}
	digest, err := fingerprint(root)
	if err != nil {
		common.Error("catalog", err)
		return fmt.Errorf("loading command catalog: %w", err)
	}

	it.mu.Lock()
	it.root, it.nodes, it.order, it.digest = root, nodes, order, digest
	it.mu.Unlock()

	common.Debug("Catalog has %d commands, digest %016x.", len(order), digest)
	stopwatch.Debug()
	return nil
}

func flatten(root *CommandNode) (map[string]*CommandNode, []string, error) {
	nodes := make(map[string]*CommandNode)
	order := make([]string, 0, 32)
	err := root.Walk(func(node *CommandNode, _ int) error {
		if len(node.Path) == 0 {
			return nil
		}
		if _, ok := nodes[node.Path]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicatePath, node.Path)
		}
		nodes[node.Path] = node
		order = append(order, node.Path)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return nodes, order, nil
}

func fingerprint(root *CommandNode) (uint64, error) {
	content, err := json.Marshal(root)
	if err != nil {
		return 0, err
	}
	return siphash.Hash(digestKey0, digestKey1, content), nil
}

func (it *Index) Lookup(path string) (*CommandNode, bool) {
	it.mu.RLock()
	defer it.mu.RUnlock()

	node, ok := it.nodes[path]
	return node, ok
}

func (it *Index) Root() *CommandNode {
	it.mu.RLock()
	defer it.mu.RUnlock()

	return it.root
}

func (it *Index) Loaded() bool {
	it.mu.RLock()
	defer it.mu.RUnlock()

	return it.root != nil
}

func (it *Index) Len() int {
	it.mu.RLock()
	defer it.mu.RUnlock()

	return len(it.order)
}

// Paths lists every indexed path in walk order.
func (it *Index) Paths() []string {
	it.mu.RLock()
	defer it.mu.RUnlock()

	result := make([]string, len(it.order))
	copy(result, it.order)
	return result
}

// Callable lists invocable nodes in walk order.
func (it *Index) Callable() []*CommandNode {
	it.mu.RLock()
	defer it.mu.RUnlock()

	result := make([]*CommandNode, 0, len(it.order))
	for _, path := range it.order {
		node := it.nodes[path]
		if node.IsCallable {
			result = append(result, node)
		}
	}
	return result
}

// Digest fingerprints the loaded tree, empty before the first load.
func (it *Index) Digest() string {
	it.mu.RLock()
	defer it.mu.RUnlock()

	if it.root == nil {
		return ""
	}
	return fmt.Sprintf("%016x", it.digest)
}
