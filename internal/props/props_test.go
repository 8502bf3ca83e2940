package props

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "simple pairs",
			input: "client.builder=example.ClientBuilder\nruntime.builder = example.RuntimeBuilder\n",
			want: map[string]string{
				"client.builder":  "example.ClientBuilder",
				"runtime.builder": "example.RuntimeBuilder",
			},
		},
		{
			name:  "comments and blanks",
			input: "# comment\n\n! also a comment\nclient.builder=example.ClientBuilder\n",
			want:  map[string]string{"client.builder": "example.ClientBuilder"},
		},
		{
			name:  "colon separator",
			input: "client.builder: example.ClientBuilder\n",
			want:  map[string]string{"client.builder": "example.ClientBuilder"},
		},
		{
			name:  "later occurrence wins",
			input: "client.builder=example.First\nclient.builder=example.Second\n",
			want:  map[string]string{"client.builder": "example.Second"},
		},
		{
			name:  "empty value allowed",
			input: "client.builder=\n",
			want:  map[string]string{"client.builder": ""},
		},
		{
			name:    "missing separator",
			input:   "client.builder example.ClientBuilder\n",
			wantErr: true,
		},
		{
			name:    "empty key",
			input:   "=example.ClientBuilder\n",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tc.input))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
