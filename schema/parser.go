package schema

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/autonity/autonity/accounts/abi"
	"github.com/autonity/autonity/common"
	"github.com/autonity/autonity/core/types"

	"logsync/config"
	"logsync/interfaces"
	"logsync/model"
)

const (
	PostCreated   = "PostCreated"
	IPAssetMinted = "IPAssetMinted"
)

var (
	ErrMalformedEvent  = errors.New("malformed event")
	ErrUnknownEvent    = errors.New("unknown event")
	ErrIncompatibleABI = errors.New("abi changes the signature of a synced event")
)

// pinnedEvents are decoded into fixed model types; an override must keep
// their embedded signature.
var pinnedEvents = []string{PostCreated, IPAssetMinted}

//go:embed abi/*.abi
var defaultABIs embed.FS

type abiParser struct {
	cfg    config.ABIConfig
	mu     sync.RWMutex
	events map[string]abi.Event // event name to definition
	done   chan struct{}
}

func NewABIParser(cfg config.ABIConfig) interfaces.ABIParser {
	return &abiParser{
		cfg:    cfg,
		events: make(map[string]abi.Event),
	}
}

func (ap *abiParser) Start() error {
	if err := ap.loadDefaults(); err != nil {
		return err
	}
	if ap.cfg.Dir == "" {
		ap.ListEvents()
		return nil
	}
	if err := ap.LoadABIs(); err != nil {
		return err
	}
	ap.done = make(chan struct{})
	go WatchABIs(ap.cfg.Dir, ap, ap.done)
	return nil
}

func (ap *abiParser) Stop() error {
	if ap.done != nil {
		close(ap.done)
		ap.done = nil
	}
	return nil
}

func (ap *abiParser) loadDefaults() error {
	entries, err := defaultABIs.ReadDir("abi")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		data, err := defaultABIs.ReadFile("abi/" + entry.Name())
		if err != nil {
			return err
		}
		if err := ap.register(data); err != nil {
			return fmt.Errorf("embedded abi %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// LoadABIs parses every .abi file in the configured directory. Definitions
// found there replace the embedded ones with the same event name.
func (ap *abiParser) LoadABIs() error {
	slog.Info("Reading ABIs from path", "dir", ap.cfg.Dir)
	files, err := os.ReadDir(ap.cfg.Dir)
	if err != nil {
		slog.Error("error reading dir", "name", ap.cfg.Dir, "error", err)
		return err
	}
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".abi" {
			absPath := filepath.Join(ap.cfg.Dir, file.Name())
			slog.Info("Parsing...", "file", absPath)
			if err := ap.Parse(absPath); err != nil {
				return err
			}
		}
	}
	ap.ListEvents()
	return nil
}

func (ap *abiParser) ListEvents() {
	ap.mu.RLock()
	names := make([]string, 0, len(ap.events))
	for name := range ap.events {
		names = append(names, name)
	}
	ap.mu.RUnlock()
	sort.Strings(names)
	slog.Info("All events", "events", names)
}

func (ap *abiParser) Parse(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		slog.Error("Error opening abi file", "error", err)
		return err
	}
	if err := ap.register(data); err != nil {
		slog.Error("Error reading abi file", "file", filename, "error", err)
		return err
	}
	return nil
}

func (ap *abiParser) register(data []byte) error {
	parsedABI, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	ap.mu.Lock()
	defer ap.mu.Unlock()
	for _, name := range pinnedEvents {
		current, known := ap.events[name]
		next, replaced := parsedABI.Events[name]
		if known && replaced && current.ID != next.ID {
			return fmt.Errorf("%w: %s %s -> %s", ErrIncompatibleABI, name, current.Sig, next.Sig)
		}
	}
	for name, event := range parsedABI.Events {
		ap.events[name] = event
	}
	return nil
}

func (ap *abiParser) event(name string) (abi.Event, error) {
	ap.mu.RLock()
	defer ap.mu.RUnlock()
	ev, ok := ap.events[name]
	if !ok {
		return abi.Event{}, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}
	return ev, nil
}

func (ap *abiParser) EventID(name string) (common.Hash, error) {
	ev, err := ap.event(name)
	if err != nil {
		return common.Hash{}, err
	}
	return ev.ID, nil
}

// decode unpacks indexed and non-indexed arguments of log into one map.
func (ap *abiParser) decode(name string, log types.Log) (map[string]interface{}, error) {
	ev, err := ap.event(name)
	if err != nil {
		return nil, err
	}
	if len(log.Topics) == 0 || log.Topics[0] != ev.ID {
		return nil, fmt.Errorf("%w: %s signature mismatch in tx %s", ErrMalformedEvent, name, log.TxHash.Hex())
	}
	decoded := map[string]interface{}{}
	indexed := make(abi.Arguments, 0)
	for _, input := range ev.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(log.Topics)-1 != len(indexed) {
		return nil, fmt.Errorf("%w: %s expects %d indexed topics, got %d", ErrMalformedEvent, name, len(indexed), len(log.Topics)-1)
	}
	if len(indexed) > 0 {
		if err := abi.ParseTopicsIntoMap(decoded, indexed, log.Topics[1:]); err != nil {
			return nil, fmt.Errorf("%w: %s topics: %v", ErrMalformedEvent, name, err)
		}
	}
	if err := ev.Inputs.UnpackIntoMap(decoded, log.Data); err != nil {
		return nil, fmt.Errorf("%w: %s data: %v", ErrMalformedEvent, name, err)
	}
	return decoded, nil
}

func (ap *abiParser) DecodePost(log types.Log) (post model.Post, err error) {
	// abi.ConvertType panics when the tuple layout differs from model.PostParams
	defer func() {
		if r := recover(); r != nil {
			post, err = model.Post{}, fmt.Errorf("%w: postParams: %v", ErrMalformedEvent, r)
		}
	}()
	fields, err := ap.decode(PostCreated, log)
	if err != nil {
		return model.Post{}, err
	}
	raw, ok := fields["postParams"]
	if !ok {
		return model.Post{}, fmt.Errorf("%w: missing postParams", ErrMalformedEvent)
	}
	params := *abi.ConvertType(raw, new(model.PostParams)).(*model.PostParams)

	f := fieldReader{name: PostCreated, fields: fields}
	post = model.Post{
		PostParams:                    params,
		PubId:                         f.bigInt("pubId"),
		ActionModulesInitReturnDatas:  f.bytesList("actionModulesInitReturnDatas"),
		ReferenceModuleInitReturnData: f.bytes("referenceModuleInitReturnData"),
		TransactionExecutor:           f.address("transactionExecutor"),
		Timestamp:                     f.bigInt("timestamp"),
		BlockNumber:                   log.BlockNumber,
		TxHash:                        log.TxHash,
	}
	if f.err != nil {
		return model.Post{}, f.err
	}
	if params.ProfileId == nil {
		return model.Post{}, fmt.Errorf("%w: %s missing profileId", ErrMalformedEvent, PostCreated)
	}
	return post, nil
}

func (ap *abiParser) DecodeIPAssetMinted(log types.Log) (model.IPAssetMinted, error) {
	fields, err := ap.decode(IPAssetMinted, log)
	if err != nil {
		return model.IPAssetMinted{}, err
	}
	f := fieldReader{name: IPAssetMinted, fields: fields}
	mint := model.IPAssetMinted{
		IPOrgId:     f.address("ipOrgId"),
		GlobalId:    f.bigInt("globalId"),
		LocalId:     f.bigInt("localId"),
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash,
	}
	if f.err != nil {
		return model.IPAssetMinted{}, f.err
	}
	return mint, nil
}

// fieldReader pulls typed values out of a decoded map, keeping the first error.
type fieldReader struct {
	name   string
	fields map[string]interface{}
	err    error
}

func (f *fieldReader) get(key string) (interface{}, bool) {
	if f.err != nil {
		return nil, false
	}
	v, ok := f.fields[key]
	if !ok {
		f.err = fmt.Errorf("%w: %s missing %s", ErrMalformedEvent, f.name, key)
	}
	return v, ok
}

func (f *fieldReader) fail(key string, v interface{}) {
	f.err = fmt.Errorf("%w: %s field %s has type %T", ErrMalformedEvent, f.name, key, v)
}

func (f *fieldReader) bigInt(key string) *big.Int {
	v, ok := f.get(key)
	if !ok {
		return nil
	}
	b, ok := v.(*big.Int)
	if !ok {
		f.fail(key, v)
	}
	return b
}

func (f *fieldReader) address(key string) common.Address {
	v, ok := f.get(key)
	if !ok {
		return common.Address{}
	}
	a, ok := v.(common.Address)
	if !ok {
		f.fail(key, v)
	}
	return a
}

func (f *fieldReader) bytes(key string) []byte {
	v, ok := f.get(key)
	if !ok {
		return nil
	}
	b, ok := v.([]byte)
	if !ok {
		f.fail(key, v)
	}
	return b
}

func (f *fieldReader) bytesList(key string) [][]byte {
	v, ok := f.get(key)
	if !ok {
		return nil
	}
	b, ok := v.([][]byte)
	if !ok {
		f.fail(key, v)
	}
	return b
}
