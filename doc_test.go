package depthrgb

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	require.Equal(t, "1.2.3", DepthRGBVersion{1, 2, 3}.String())
	require.Equal(t, fmt.Sprintf("%d.%d.%d", Version.Major, Version.Minor, Version.Patch), Version.String())
}
