// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package summer

import (
	"encoding/json"
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressParse(t *testing.T) {
	s := "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
	addr, err := ParseAddress(s)
	require.NoError(t, err)
	assert.Equal(t, s, addr.String())

	// left-padded on short input, truncated to the low bytes on long
	assert.Equal(t, MustParseAddress("0x0000000000000000000000000000000000616263"), BytesToAddress([]byte("abc")))

	_, err = ParseAddress("not an address")
	assert.Error(t, err)
	_, err = ParseAddress("0x1234")
	assert.Error(t, err)

	assert.True(t, Address{}.IsZero())
	assert.False(t, BytesToAddress([]byte("x")).IsZero())
}

func TestAddressJSON(t *testing.T) {
	addr := MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")

	data, err := json.Marshal(&addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestBytes32(t *testing.T) {
	b := Blake2b([]byte("payload"))
	assert.False(t, b.IsZero())
	assert.True(t, strings.HasPrefix(b.String(), "0x"))
	assert.Len(t, b.String(), 66)

	parsed, err := ParseBytes32(b.String())
	require.NoError(t, err)
	assert.Equal(t, b, *parsed)

	data, err := json.Marshal(&b)
	require.NoError(t, err)
	var decoded Bytes32
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, b, decoded)
}

func TestBlake2b(t *testing.T) {
	// concatenation defines the digest, not the argument split
	assert.Equal(t, Blake2b([]byte("ab"), []byte("c")), Blake2b([]byte("abc")))
	assert.NotEqual(t, Blake2b([]byte("abc")), Blake2b([]byte("abd")))

	h := Blake2bFn(func(w io.Writer) {
		w.Write([]byte("abc"))
	})
	assert.Equal(t, Blake2b([]byte("abc")), h)
}

func TestWadMath(t *testing.T) {
	assert.Equal(t, new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil), WAD())
	assert.Equal(t, WAD(), ToWad(big.NewInt(1)))

	two := ToWad(big.NewInt(2))
	three := ToWad(big.NewInt(3))
	assert.Equal(t, ToWad(big.NewInt(6)), WadMul(two, three))

	// division rounds down
	assert.Equal(t, big.NewInt(666_666_666_666_666_666), WadDiv(two, three))
	assert.Equal(t, two, WadMul(WadDiv(two, big.NewInt(1)), big.NewInt(1)))

	// WadMul(WadDiv(a, b), b) never exceeds a
	a, b := big.NewInt(1_000_000_000_000), big.NewInt(604_800)
	assert.True(t, WadMul(WadDiv(a, b), b).Cmp(a) <= 0)
}
