// Command mbslave-demo wires github.com/GoAethereal/mbslave to a physical
// UART through github.com/goburrow/serial, cancellable with
// github.com/GoAethereal/cancel, logging through zap.
package main

import (
	"bufio"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/GoAethereal/cancel"
	"github.com/goburrow/serial"
	"go.uber.org/zap"

	"github.com/GoAethereal/mbslave"
)

// fixedLengthFrames maps function codes whose request has a fixed total
// length in bytes, CRC included: 8 for the read and write-single functions
// (address, function, 4 bytes of address/value, 2 CRC bytes), 4 for 0x07 and
// 0x11 (no data field), 10 for mask write 0x16. The two "write multiple"
// functions and diagnostics (0x08) are handled separately in readFrame.
var fixedLengthFrames = map[byte]int{
	0x01: 8, 0x02: 8, 0x03: 8, 0x04: 8, 0x05: 8, 0x06: 8, 0x07: 4, 0x11: 4, 0x16: 10,
}

// readFrame reads one candidate RTU frame off r, determining its length
// from the function code the same way rinzlerlabs-gomodbus's RTU server
// does: read address+function first, then either a fixed remaining count
// or, for the write-multiple functions, the byte-count field that follows
// the address/quantity pair.
func readFrame(r *bufio.Reader) ([]byte, error) {
	head := make([]byte, 2)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, err
	}
	fc := head[1]

	if n, ok := fixedLengthFrames[fc]; ok {
		rest := make([]byte, n-2)
		if _, err := io.ReadFull(r, rest); err != nil {
			return nil, err
		}
		return append(head, rest...), nil
	}

	switch fc {
	case 0x0F, 0x10:
		rest := make([]byte, 5) // addr(2) qty(2) byte_count(1)
		if _, err := io.ReadFull(r, rest); err != nil {
			return nil, err
		}
		byteCount := int(rest[4])
		tail := make([]byte, byteCount+2) // data + crc
		if _, err := io.ReadFull(r, tail); err != nil {
			return nil, err
		}
		frame := append(head, rest...)
		return append(frame, tail...), nil
	case 0x08:
		rest := make([]byte, 4+2) // sub(2) data(2) crc(2)
		if _, err := io.ReadFull(r, rest); err != nil {
			return nil, err
		}
		return append(head, rest...), nil
	default:
		// unknown function code: read the minimum trailing CRC so the
		// device can still reject it with an illegal-function exception.
		rest := make([]byte, 2)
		if _, err := io.ReadFull(r, rest); err != nil {
			return nil, err
		}
		return append(head, rest...), nil
	}
}

func main() {
	address := flag.Int("address", 1, "Modbus RTU device address (1-247)")
	port := flag.String("port", "/dev/ttyUSB0", "serial device path")
	baud := flag.Int("baud", 9600, "serial baud rate")
	flag.Parse()

	zlog, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer zlog.Sync()
	sugar := zlog.Sugar()

	conn, err := serial.Open(&serial.Config{
		Address:  *port,
		BaudRate: *baud,
		DataBits: 8,
		Parity:   "N",
		StopBits: 1,
	})
	if err != nil {
		sugar.Fatalf("mbslave-demo: open serial port: %v", err)
	}
	defer conn.Close()

	coils := make([]byte, 24)
	discrete := make([]byte, 24)
	holding := make([]uint16, 24)
	input := make([]uint16, 24)

	dev, err := mbslave.New(mbslave.Options{
		Address:        byte(*address),
		Coils:          mbslave.BitMap{Start: 0, End: 24, Backing: coils},
		DiscreteInputs: mbslave.BitMap{Start: 0, End: 24, Backing: discrete},
		Holding:        mbslave.RegisterMap{Start: 0, End: 24, Backing: holding},
		Input:          mbslave.RegisterMap{Start: 0, End: 24, Backing: input},
		Send: func(frame []byte) {
			if _, err := conn.Write(frame); err != nil {
				sugar.Errorf("mbslave-demo: write response: %v", err)
			}
		},
		Logger: mbslave.NewZapLogger(sugar),
	})
	if err != nil {
		sugar.Fatalf("mbslave-demo: %v", err)
	}

	root := cancel.New()
	defer root.Cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		root.Cancel()
	}()

	r := bufio.NewReader(conn)
	for {
		select {
		case <-root.Done():
			sugar.Info("mbslave-demo: shutting down")
			return
		default:
		}
		frame, err := readFrame(r)
		if err != nil {
			sugar.Warnf("mbslave-demo: read frame: %v", err)
			continue
		}
		dev.HandleRequest(frame)
	}
}
