package content

import (
	"fmt"
	"net/http/httptest"
	"strings"
)
import "github.com/illuscio-dev/contools-go/transcoders"

// EXAMPLES ##########

// A typical service setup: register JSON and msgpack, default to JSON, then let
// each request's cycle decode the body by Content-Type and negotiate the
// response representation from the Accept header.
func ExampleSettings() {
	settings := NewSettings(nil)

	jsonTranscoder, _ := transcoders.NewJSONTranscoder()
	_ = settings.AddTranscoder(jsonTranscoder)

	msgpackTranscoder, _ := transcoders.NewMsgPackTranscoder()
	_ = settings.AddTranscoder(msgpackTranscoder)

	_ = settings.SetDefaultContentType("application/json", "utf-8")

	request := httptest.NewRequest(
		"POST", "/", strings.NewReader(`{"hi":"there"}`),
	)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/msgpack; q=1.0, application/json; q=0.5")

	cycle := settings.NewRequestCycle(request)

	body, _ := cycle.RequestBody()
	fmt.Println(body.(map[string]interface{})["hi"])

	responseType, _ := cycle.ResponseContentType()
	fmt.Println(responseType)

	// Output:
	// there
	// application/msgpack
}
