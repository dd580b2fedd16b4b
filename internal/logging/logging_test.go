package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_Level(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, SetupLogging("debug").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging("loud").Level)
}

func TestGetLogData_Missing(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))
}

func TestLogData_Fields(t *testing.T) {
	logData := NewLogData(logrus.New())
	ctx := WithLogData(context.Background(), logData)

	GetLogData(ctx).AddData("count", 3)
	stop := GetLogData(ctx).AddTiming("lookupMs")
	stop()

	entry := logData.Log()
	assert.Equal(t, 3, entry.Data["count"])
	assert.Contains(t, entry.Data, "lookupMs")
}

type pingOutput struct {
	Body struct {
		HasLogData bool `json:"hasLogData"`
	}
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogging("info")
	logger.Out = &buf

	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(logger))
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.HasLogData = GetLogData(ctx) != nil
		return out, nil
	})

	resp := api.Get("/ping")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"hasLogData":true`)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Handler.ping.Complete", line["msg"])
	assert.Equal(t, "info", line["loglevel"])
	assert.Equal(t, "/ping", line["path"])
}
