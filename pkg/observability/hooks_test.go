package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	b := NoopBuildHooks{}
	b.OnBuildStart(ctx, "geo", 12, 9)
	b.OnBuildComplete(ctx, "geo", 11, 9, time.Millisecond, nil)

	br := NoopBridgeHooks{}
	br.OnOperationStart(ctx, "op-1", "delete")
	br.OnOperationResolved(ctx, "op-1", "delete", "committed", time.Second)
	br.OnPositionReport(ctx, 40)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "graph")
	c.OnCacheMiss(ctx, "positions")
	c.OnCacheSet(ctx, "graph", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "example.org", "/plan.png")
	h.OnResponse(ctx, "GET", "example.org", "/plan.png", 200, time.Second)
	h.OnError(ctx, "GET", "example.org", "/plan.png", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Error("Build() should return NoopBuildHooks by default")
	}
	if _, ok := Bridge().(NoopBridgeHooks); !ok {
		t.Error("Bridge() should return NoopBridgeHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customBuild := &testBuildHooks{}
	SetBuildHooks(customBuild)
	if Build() != customBuild {
		t.Error("SetBuildHooks should set custom hooks")
	}

	customBridge := &testBridgeHooks{}
	SetBridgeHooks(customBridge)
	if Bridge() != customBridge {
		t.Error("SetBridgeHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Bridge().(NoopBridgeHooks); !ok {
		t.Error("Reset() should restore NoopBridgeHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testBridgeHooks{}
	SetBridgeHooks(custom)
	SetBridgeHooks(nil)

	if Bridge() != custom {
		t.Error("SetBridgeHooks(nil) should be ignored")
	}
}

type testBuildHooks struct{ NoopBuildHooks }
type testBridgeHooks struct{ NoopBridgeHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
