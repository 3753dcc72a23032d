package otlp

import (
	"encoding/hex"
	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
	"google.golang.org/protobuf/proto"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
)

type spanStatus string

const (
	statusUnset spanStatus = "UNSET"
	statusOK    spanStatus = "OK"
	statusError spanStatus = "ERROR"
)

// exportedSpan is the decoded form of one span received over the OTLP wire.
type exportedSpan struct {
	spanID       string
	parentSpanID string
	traceID      string
	service      string
	name         string
	startTime    time.Time
	endTime      time.Time
	attributes   map[string]string
	events       []string
	status       spanStatus
}

func (s exportedSpan) hasEvent(name string) bool {
	for _, event := range s.events {
		if event == name {
			return true
		}
	}
	return false
}

// collector is an in-memory OTLP/HTTP trace collector. It accepts protobuf
// export requests on /v1/traces and decodes every span it receives.
type collector struct {
	server *httptest.Server
	mu     sync.Mutex
	spans  []exportedSpan
}

func startCollector(t *testing.T) *collector {
	c := &collector{}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/traces", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		defer r.Body.Close()

		var req coltracepb.ExportTraceServiceRequest
		if err := proto.Unmarshal(body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		c.mu.Lock()
		for _, resourceSpan := range req.ResourceSpans {
			serviceName := getServiceName(resourceSpan)
			c.spans = append(c.spans, getExportedSpans(resourceSpan, serviceName)...)
		}
		c.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	c.server = httptest.NewServer(mux)
	t.Cleanup(c.server.Close)
	return c
}

func (c *collector) url() string {
	return c.server.URL
}

func (c *collector) getSpans() []exportedSpan {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]exportedSpan(nil), c.spans...)
}

func (c *collector) findSpan(name string) (exportedSpan, bool) {
	for _, span := range c.getSpans() {
		if span.name == name {
			return span, true
		}
	}
	return exportedSpan{}, false
}

func getServiceName(resourceSpan *tracepb.ResourceSpans) string {
	serviceName := "unknown"
	for _, attr := range resourceSpan.GetResource().GetAttributes() {
		if attr.Key == "service.name" {
			serviceName = attr.Value.GetStringValue()
		}
	}
	return serviceName
}

func getExportedSpans(resourceSpan *tracepb.ResourceSpans, serviceName string) []exportedSpan {
	var spans []exportedSpan
	for _, scopeSpan := range resourceSpan.ScopeSpans {
		for _, span := range scopeSpan.Spans {
			spans = append(spans, getExportedSpan(span, serviceName))
		}
	}
	return spans
}

func getExportedSpan(span *tracepb.Span, serviceName string) exportedSpan {
	attributes := make(map[string]string)
	for _, attr := range span.Attributes {
		attributes[attr.Key] = attributeValue(attr.Value)
	}
	events := make([]string, len(span.Events))
	for i, event := range span.Events {
		events[i] = event.Name
	}

	return exportedSpan{
		spanID:       hex.EncodeToString(span.SpanId),
		parentSpanID: hex.EncodeToString(span.ParentSpanId),
		traceID:      hex.EncodeToString(span.TraceId),
		service:      serviceName,
		name:         span.Name,
		startTime:    time.Unix(0, int64(span.StartTimeUnixNano)),
		endTime:      time.Unix(0, int64(span.EndTimeUnixNano)),
		attributes:   attributes,
		events:       events,
		status:       getStatus(span),
	}
}

func attributeValue(value *commonpb.AnyValue) string {
	switch v := value.Value.(type) {
	case *commonpb.AnyValue_StringValue:
		return v.StringValue
	case *commonpb.AnyValue_BoolValue:
		return strconv.FormatBool(v.BoolValue)
	case *commonpb.AnyValue_IntValue:
		return strconv.FormatInt(v.IntValue, 10)
	case *commonpb.AnyValue_DoubleValue:
		return strconv.FormatFloat(v.DoubleValue, 'f', -1, 64)
	default:
		return value.String()
	}
}

func getStatus(span *tracepb.Span) spanStatus {
	if span.Status == nil || span.Status.Code == 0 {
		return statusUnset
	}
	if span.Status.Code == 1 {
		return statusOK
	}
	return statusError
}
