// Package huffman builds Huffman codes over the 8-bit character alphabet and
// uses them to encode text as strings of '0' and '1' characters, and to decode
// such strings back into text.
//
// A tree is built from a FrequencyTable with Build, or loaded from its bit
// representation with ParseTree.  Derive turns a tree into a CodeTable for
// Encode; Decode walks the tree itself.  Serialize produces the bit
// representation that ParseTree reads:
//
//     tree  := '0' tree tree    // Internal node: Zero child, then One child
//            | '1' bits8        // Leaf: 8 bits of its Symbol, MSB first
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
