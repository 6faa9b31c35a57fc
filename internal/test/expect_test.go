package test_test

import (
	"errors"
	"testing"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/test"
)

func TestExpectSuccess(t *testing.T) {
	var err error
	test.ExpectSuccess(t, true)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)
}

func TestExpectFailure(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("failure"))
}

func TestExpectEquality(t *testing.T) {
	test.ExpectEquality(t, uint8(0x3c), 0x3c)
	test.ExpectEquality(t, "ZnHc", "ZnHc", "flags")
	test.ExpectInequality(t, uint16(0xfffe), 0xfffc)
	test.DemandEquality(t, 4, 4)
}
