package dict

type TrieNode struct {
	isWord   bool
	children [26]*TrieNode
}

// insert adds word to the trie. Words containing anything but a-z are ignored.
func (n *TrieNode) insert(word string) {
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return
		}
	}
	node := n
	for i := 0; i < len(word); i++ {
		idx := word[i] - 'a'
		if node.children[idx] == nil {
			node.children[idx] = &TrieNode{}
		}
		node = node.children[idx]
	}
	node.isWord = true
}

// HasWord reports whether str was inserted.
func (n *TrieNode) HasWord(str string) bool {
	if n == nil {
		return false
	}
	if len(str) == 0 {
		return n.isWord
	}

	return n.Child(str[0]).HasWord(str[1:])
}

func (n *TrieNode) Child(ch byte) *TrieNode {
	if n == nil || ch < 'a' || ch > 'z' {
		return nil
	}
	return n.children[ch-'a']
}

func (n *TrieNode) IsWord() bool {
	return n != nil && n.isWord
}

// Prefixes returns the length of every word in the trie that is a prefix of str,
// shortest first.
func (n *TrieNode) Prefixes(str string) []int {
	var result []int
	node := n
	for i := 0; i < len(str); i++ {
		node = node.Child(str[i])
		if node == nil {
			break
		}
		if node.isWord {
			result = append(result, i+1)
		}
	}
	return result
}
