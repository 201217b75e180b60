package utils

import (
	"testing"

	"github.com/ariaclab/workcell/testutils"
)

func TestMain(m *testing.M) {
	testutils.VerifyTestMain(m)
}
