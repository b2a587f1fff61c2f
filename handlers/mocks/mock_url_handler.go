package mocks

import (
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockURLHandler struct {
	mock.Mock
}

func (m *MockURLHandler) Index(c *gin.Context)         { m.Called(c) }
func (m *MockURLHandler) Shorten(c *gin.Context)       { m.Called(c) }
func (m *MockURLHandler) OpenEdit(c *gin.Context)      { m.Called(c) }
func (m *MockURLHandler) Update(c *gin.Context)        { m.Called(c) }
func (m *MockURLHandler) CloseEdit(c *gin.Context)     { m.Called(c) }
func (m *MockURLHandler) ConfirmDelete(c *gin.Context) { m.Called(c) }
func (m *MockURLHandler) Delete(c *gin.Context)        { m.Called(c) }

func (m *MockURLHandler) APIShorten(c *gin.Context) { m.Called(c) }
func (m *MockURLHandler) APIList(c *gin.Context)    { m.Called(c) }
func (m *MockURLHandler) APIUpdate(c *gin.Context)  { m.Called(c) }
func (m *MockURLHandler) APIDelete(c *gin.Context)  { m.Called(c) }
func (m *MockURLHandler) APINotices(c *gin.Context) { m.Called(c) }
func (m *MockURLHandler) APIStatus(c *gin.Context)  { m.Called(c) }

func (m *MockURLHandler) HealthCheck(c *gin.Context) { m.Called(c) }
func (m *MockURLHandler) RedirectURL(c *gin.Context) { m.Called(c) }

func (m *MockURLHandler) RateLimitMiddleware() gin.HandlerFunc {
	args := m.Called()
	return args.Get(0).(gin.HandlerFunc)
}
