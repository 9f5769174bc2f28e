package transport

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/nagielhachem/Distributed-Memory/apc"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// wireFrame is the JSON-serializable shape of an Envelope plus the
// sender's rank (needed by TCPBus to demultiplex an accepted
// connection's incoming messages by peer, since one listener may see
// traffic from several ranks — e.g. the coordinator's listener accepts
// from both the client and every worker).
type wireFrame struct {
	From    apc.Rank            `json:"from"`
	Tag     apc.Tag             `json:"tag"`
	Kind    string              `json:"kind"`
	Payload jsoniter.RawMessage `json:"payload"`
}

// payloadKind names the concrete Go type behind Envelope.Payload, so
// the receiving side can decode the raw JSON back into the same type
// without guessing from Tag alone (several payload shapes share a Tag
// value across the client<->coordinator and coordinator<->worker legs).
func payloadKind(v any) (string, error) {
	switch v.(type) {
	case AllocReq:
		return "AllocReq", nil
	case AllocResp:
		return "AllocResp", nil
	case ReadReq:
		return "ReadReq", nil
	case ReadResp:
		return "ReadResp", nil
	case WriteReq:
		return "WriteReq", nil
	case DeleteReq:
		return "DeleteReq", nil
	case ErrorResp:
		return "ErrorResp", nil
	case WorkerAllocMsg:
		return "WorkerAllocMsg", nil
	case WorkerReadMsg:
		return "WorkerReadMsg", nil
	case WorkerReadReply:
		return "WorkerReadReply", nil
	case WorkerWriteMsg:
		return "WorkerWriteMsg", nil
	case WorkerDeleteMsg:
		return "WorkerDeleteMsg", nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("transport: unknown payload type %T", v)
	}
}

func decodePayload(kind string, raw jsoniter.RawMessage) (any, error) {
	var err error
	switch kind {
	case "":
		return nil, nil
	case "AllocReq":
		var v AllocReq
		err = json.Unmarshal(raw, &v)
		return v, err
	case "AllocResp":
		var v AllocResp
		err = json.Unmarshal(raw, &v)
		return v, err
	case "ReadReq":
		var v ReadReq
		err = json.Unmarshal(raw, &v)
		return v, err
	case "ReadResp":
		var v ReadResp
		err = json.Unmarshal(raw, &v)
		return v, err
	case "WriteReq":
		var v WriteReq
		err = json.Unmarshal(raw, &v)
		return v, err
	case "DeleteReq":
		var v DeleteReq
		err = json.Unmarshal(raw, &v)
		return v, err
	case "ErrorResp":
		var v ErrorResp
		err = json.Unmarshal(raw, &v)
		return v, err
	case "WorkerAllocMsg":
		var v WorkerAllocMsg
		err = json.Unmarshal(raw, &v)
		return v, err
	case "WorkerReadMsg":
		var v WorkerReadMsg
		err = json.Unmarshal(raw, &v)
		return v, err
	case "WorkerReadReply":
		var v WorkerReadReply
		err = json.Unmarshal(raw, &v)
		return v, err
	case "WorkerWriteMsg":
		var v WorkerWriteMsg
		err = json.Unmarshal(raw, &v)
		return v, err
	case "WorkerDeleteMsg":
		var v WorkerDeleteMsg
		err = json.Unmarshal(raw, &v)
		return v, err
	default:
		return nil, fmt.Errorf("transport: unknown wire kind %q", kind)
	}
}
