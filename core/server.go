package core

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"log"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/josephlewis42/step/core/config"
	"github.com/josephlewis42/step/core/shell"
	"github.com/josephlewis42/step/core/ttylog"
	"github.com/juju/ratelimit"
	"github.com/spf13/afero"
)

// Server hands every SSH connection its own interactive Step session.
type Server struct {
	configuration *config.Configuration
	logger        *log.Logger
	sshServer     *ssh.Server
}

func NewServer(configuration *config.Configuration, logger *log.Logger) (*Server, error) {
	server := &Server{
		configuration: configuration,
		logger:        logger,
	}

	server.sshServer = &ssh.Server{
		Addr: fmt.Sprintf(":%d", configuration.Server.SSHPort),
		Handler: func(s ssh.Session) {
			if err := server.HandleConnection(s); err != nil {
				logger.Printf("session %s: %v", s.RemoteAddr(), err)
			}
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return server.checkPassword(password)
		},
	}

	signer, err := configuration.HostSigner()
	if err != nil {
		return nil, fmt.Errorf("couldn't load host key, did you run init?: %w", err)
	}
	server.sshServer.AddHostKey(signer)

	return server, nil
}

func (s *Server) checkPassword(password string) bool {
	want := s.configuration.Server.Password
	if want == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(want)) == 1
}

// SessionFs is the filesystem given to a connection: scripts can be read
// from the configured script directory, writes only land in memory.
func (s *Server) SessionFs() afero.Fs {
	return afero.NewCopyOnWriteFs(s.configuration.ScriptFs(), afero.NewMemMapFs())
}

// HandleConnection runs a shell over the session until the client leaves.
func (s *Server) HandleConnection(sess ssh.Session) error {
	s.logger.Printf("- %s@%s connected", sess.User(), sess.RemoteAddr())
	defer s.logger.Printf("- %s@%s disconnected", sess.User(), sess.RemoteAddr())

	ptyInfo, winch, isPTY := sess.Pty()
	width := int64(ptyInfo.Window.Width)
	if isPTY {
		go func() {
			for window := range winch {
				atomic.StoreInt64(&width, int64(window.Width))
			}
		}()
	}

	var stdin io.Reader = sess
	if rate := s.configuration.Server.InputBytesPerSecond; rate > 0 {
		stdin = ratelimit.Reader(sess, ratelimit.NewBucketWithRate(float64(rate), rate))
	}
	var stdout io.Writer = sess

	if recordingFs := s.configuration.RecordingFs(); recordingFs != nil {
		recorder, closeRecording, err := s.startRecording(recordingFs, sess, ptyInfo)
		if err != nil {
			// Recording is best effort, the session carries on without it.
			s.logger.Printf("- couldn't record session: %v", err)
		} else {
			defer closeRecording()
			stdin = recorder.Input(stdin)
			stdout = recorder.Output(stdout)
		}
	}

	// A session without a history file keeps history in memory only.
	cfg := *s.configuration
	cfg.HistoryFile = ""

	sh, err := shell.NewShell(shell.Terminal{
		Stdin:      stdin,
		Stdout:     stdout,
		IsTerminal: isPTY,
		Width:      func() int { return int(atomic.LoadInt64(&width)) },
	}, &cfg, s.SessionFs(), nil)
	if err != nil {
		sess.Exit(1)
		return err
	}
	defer sh.Close()

	if motd := s.configuration.Server.Motd; motd != "" {
		fmt.Fprintln(stdout, motd)
	}

	return sess.Exit(sh.Run())
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// startRecording creates an asciicast file for the session.
func (s *Server) startRecording(fs afero.Fs, sess ssh.Session, ptyInfo ssh.Pty) (*ttylog.Recorder, func(), error) {
	now := time.Now()
	user := unsafeFileChars.ReplaceAllString(sess.User(), "_")
	name := fmt.Sprintf("%s-%s.%s", now.UTC().Format("20060102T150405.000000000"), user, ttylog.AsciicastFileExt)

	fd, err := fs.Create(name)
	if err != nil {
		return nil, nil, err
	}

	header := ttylog.AsciicastHeader{
		Width:     ptyInfo.Window.Width,
		Height:    ptyInfo.Window.Height,
		Timestamp: now.Unix(),
		Title:     fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr()),
	}
	if ptyInfo.Term != "" {
		header.Env = map[string]string{"TERM": ptyInfo.Term}
	}

	cast, err := ttylog.NewAsciicastWriter(fd, header)
	if err != nil {
		fd.Close()
		return nil, nil, err
	}

	s.logger.Printf("- Recording %s@%s to %s", sess.User(), sess.RemoteAddr(), name)
	recorder := ttylog.NewRecorder(cast)
	return recorder, func() {
		if err := recorder.Err(); err != nil {
			s.logger.Printf("- recording %s incomplete: %v", name, err)
		}
		fd.Close()
	}, nil
}

func (s *Server) ListenAndServe() error {
	s.logger.Printf("- Starting SSH server on %s\n", s.sshServer.Addr)
	return s.sshServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.sshServer.Shutdown(ctx)
}
