package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientType(t *testing.T) {
	assert.Equal(t, ClientWeb, ResolveClientType("web", ""))
	assert.Equal(t, ClientMobile, ResolveClientType("MOBILE", "Mozilla/5.0"))
	assert.Equal(t, ClientWeb, ResolveClientType("", "Mozilla/5.0 (X11; Linux x86_64)"))
	assert.Equal(t, ClientAPI, ResolveClientType("", "curl/8.0"))
	assert.True(t, IsWebClient(ClientWeb))
	assert.False(t, IsWebClient(ClientAPI))
}
