package format

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// NIST test digests of "abc" for each supported algorithm.
const (
	abcSha256  = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	abcSha384  = "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"
	abcSha512  = "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"
	abcSha3224 = "e642824c3f8cf24ad09234ee7d3c766fc9a3a5168d0c94ad73b46fdf"
	abcSha3256 = "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"
	abcSha3384 = "ec01498288516fc926459f58e2c6ad8df9b473cb0fc08c2596da7cf0e49be4b298d88cea927ac7f539f1edf228376d25"
	abcSha3512 = "b751850b1a57168a5693cd924b6b096e08f621827444f70d884f5d0240d2712e10e116e9192af3c91a7ec57647e3934057340b4cf408d5a56592f8274eec53f0"
)

func TestHashAlgorithm_Sum(t *testing.T) {
	cases := []struct {
		alg  HashAlgorithm
		want string
	}{
		{HashSha256, abcSha256},
		{HashSha256_128, abcSha256[:32]},
		{HashSha256_120, abcSha256[:30]},
		{HashSha256_96, abcSha256[:24]},
		{HashSha256_64, abcSha256[:16]},
		{HashSha256_32, abcSha256[:8]},
		{HashSha384, abcSha384},
		{HashSha512, abcSha512},
		{HashSha3_224, abcSha3224},
		{HashSha3_256, abcSha3256},
		{HashSha3_384, abcSha3384},
		{HashSha3_512, abcSha3512},
	}

	for _, tc := range cases {
		t.Run(tc.alg.String(), func(t *testing.T) {
			digest, err := tc.alg.Sum([]byte("abc"))
			require.NoError(t, err)
			require.Equal(t, tc.want, hex.EncodeToString(digest))
			require.Len(t, digest, tc.alg.Size())
		})
	}
}

func TestHashAlgorithm_SumUnsupported(t *testing.T) {
	_, err := HashUnspecified.Sum([]byte("abc"))
	require.Error(t, err)

	_, err = HashAlgorithm(200).Sum([]byte("abc"))
	require.Error(t, err)
}

func TestHashAlgorithm_Verify(t *testing.T) {
	digest, err := HashSha256_64.Sum([]byte("abc"))
	require.NoError(t, err)

	ok, err := HashSha256_64.Verify([]byte("abc"), digest)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = HashSha256_64.Verify([]byte("abd"), digest)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashAlgorithm_Size(t *testing.T) {
	require.Equal(t, 32, HashSha256.Size())
	require.Equal(t, 16, HashSha256_128.Size())
	require.Equal(t, 15, HashSha256_120.Size())
	require.Equal(t, 12, HashSha256_96.Size())
	require.Equal(t, 8, HashSha256_64.Size())
	require.Equal(t, 4, HashSha256_32.Size())
	require.Equal(t, 48, HashSha384.Size())
	require.Equal(t, 64, HashSha512.Size())
	require.Zero(t, HashUnspecified.Size())
	require.Zero(t, HashAlgorithm(99).Size())
}
