package testutils

import (
	"time"

	"github.com/itbasis/go-clock"
)

// TestNow is the instant controller tests run at: a Tuesday evening in
// eastern daylight time.
var TestNow = time.Date(2024, time.September, 10, 22, 0, 0, 0, time.UTC)

// TestController bundles the fakes a controller test needs: a mock
// clock pinned to TestNow and fake booking and league servers.
type TestController struct {
	Clock       *clock.Mock
	FakeServeme *FakeServemeServer
	FakeRGL     *FakeRGLServer
}

func NewTestController() *TestController {
	c := clock.NewMock()
	c.Set(TestNow)

	return &TestController{
		Clock:       c,
		FakeServeme: NewFakeServemeServer(),
		FakeRGL:     NewFakeRGLServer(),
	}
}

func (c *TestController) Close() {
	c.FakeServeme.Close()
	c.FakeRGL.Close()
}
