package abi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestERC721ABI(t *testing.T) {
	req := require.New(t)
	for _, m := range []string{"ownerOf", "isApprovedForAll", "safeTransferFrom"} {
		_, ok := ERC721ABI.Methods[m]
		req.True(ok, m)
	}
	_, ok := ERC721ABI.Events["Transfer"]
	req.True(ok)
}
