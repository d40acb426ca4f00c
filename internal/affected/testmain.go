package affected

import "github.com/AstyCo/lazyut/internal/filetree"

// testMainSearchCap bounds how many candidate test-main files the search
// collects before giving up early: the search stops once more than
// testMainSearchCap have been found, so at most testMainSearchCap+1 are
// collected. Mirrors the `vTestMainFiles.size() > 2`
// guard in original_source/lib/types/file_tree.cpp's searchTestMainR: a
// project with more than a couple of files defining `main` under its test
// tree is already misconfigured, so there is no value in enumerating every
// one of them.
const testMainSearchCap = 2

// LabelTestMains walks testTree and sets the Labeled flag on every test
// file whose implement-set contains the unqualified symbol "main", up to
// testMainSearchCap+1 matches. Mirrors FileTree::labelTestMain.
func LabelTestMains(testTree *filetree.Tree) []*filetree.Node {
	var found []*filetree.Node
	searchTestMain(testTree.Root, &found)
	for _, n := range found {
		n.SetFlag(filetree.Labeled)
	}
	return found
}

func searchTestMain(n *filetree.Node, found *[]*filetree.Node) {
	if len(*found) > testMainSearchCap {
		return
	}
	if n.IsRegularFile() {
		if n.IsTestFile() && n.Record.ImplementsUnqualified("main") {
			*found = append(*found, n)
		}
		return
	}
	for _, child := range n.Children {
		searchTestMain(child, found)
	}
}
