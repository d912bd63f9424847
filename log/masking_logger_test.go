package log_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/ssgreg/logf"
	"github.com/stretchr/testify/require"

	"github.com/pagerun/pagerun-go/log"
	"github.com/pagerun/pagerun-go/log/logtest"
)

func TestMaskingLogger(t *testing.T) {
	recorder := logtest.NewRecorder()
	maskingLog := log.NewMaskingLogger(recorder, log.NewMasker(log.DefaultMasks))

	checkRecordedLogAndReset := func(wantText string, wantLevel log.Level, wantFields ...log.Field) {
		entries := recorder.Entries()
		require.Len(t, entries, 1)
		require.Equal(t, wantText, entries[0].Text)
		require.Equal(t, wantLevel, entries[0].Level)
		require.ElementsMatch(t, wantFields, entries[0].Fields)
		recorder.Reset()
	}

	maskingLog.Error("client_secret=123", log.String("value", "client_secret=333"), log.Error(errors.New("client_secret=665")))
	checkRecordedLogAndReset("client_secret=***", log.LevelError, log.String("value", "client_secret=***"),
		log.Error(errors.New("client_secret=***")))

	maskingLog.Info("client_secret=123", log.String("value", "client_secret=346"), log.Error(errors.New("client_secret=668")))
	checkRecordedLogAndReset("client_secret=***", log.LevelInfo, log.String("value", "client_secret=***"),
		log.Error(errors.New("client_secret=***")))

	maskingLog.Warn("client_secret=123", log.String("value", "client_secret=332"), log.Error(errors.New("client_secret=965")))
	checkRecordedLogAndReset("client_secret=***", log.LevelWarn, log.String("value", "client_secret=***"),
		log.Error(errors.New("client_secret=***")))

	maskingLog.Debug("client_secret=123", log.String("value", "client_secret=333"), log.Error(errors.New("client_secret=665")))
	checkRecordedLogAndReset("client_secret=***", log.LevelDebug, log.String("value", "client_secret=***"),
		log.Error(errors.New("client_secret=***")))

	maskingLog.Errorf("api_key=%d", 123)
	checkRecordedLogAndReset("api_key=***", log.LevelError)

	maskingLog.Infof("api_key=%d", 123)
	checkRecordedLogAndReset("api_key=***", log.LevelInfo)

	maskingLog.Warnf("api_key=%d", 123)
	checkRecordedLogAndReset("api_key=***", log.LevelWarn)

	maskingLog.Debugf("api_key=%d", 123)
	checkRecordedLogAndReset("api_key=***", log.LevelDebug)

	maskingLog.With(log.String("value", "client_secret=346"), log.NamedError("error_field", errors.New("client_secret=668"))).Info("client_secret=123")
	checkRecordedLogAndReset("client_secret=***", log.LevelInfo, log.String("value", "client_secret=***"),
		log.NamedError("error_field", errors.New("client_secret=***")))

	maskingLog.AtLevel(log.LevelInfo, func(l log.LogFunc) {
		l("client_secret=123", log.String("value", "client_secret=123"))
	})
	checkRecordedLogAndReset("client_secret=***", log.LevelInfo, log.String("value", "client_secret=***"))

	maskingLog.WithLevel(log.LevelInfo).Info("client_secret=123", log.String("value", "client_secret=***"))
	checkRecordedLogAndReset("client_secret=***", log.LevelInfo, log.String("value", "client_secret=***"))

	maskingLog.Error("abc", log.Error(fmtError{errors.New("client_secret=665")}))
	errS := fmt.Sprintf("%s", recorder.Entries()[0].Fields[0].Any)
	require.Contains(t, errS, "client_secret=***")
	require.Contains(t, errS, "password=***")
	recorder.Reset()

	maskingLog.Info("client_secret=123", log.Strings("value", []string{"client_secret=346"}))
	checkRecordedLogAndReset("client_secret=***", log.LevelInfo, log.Strings("value", []string{"client_secret=***"}))

	maskingLog.Info("client_secret=123", log.Bytes("value", []byte("client_secret=346")))
	checkRecordedLogAndReset("client_secret=***", log.LevelInfo, logf.ConstBytes("value", []byte("client_secret=***")))
}

type fmtError struct {
	err error
}

func (e fmtError) Error() string {
	return e.err.Error()
}

func (e fmtError) Format(f fmt.State, verb rune) {
	_, _ = io.WriteString(f, e.Error()+" password=123")
}
