// File: client/terminal_linux.go

//go:build linux

package main

import "golang.org/x/sys/unix"

type terminal struct {
	fd    int
	saved *unix.Termios
}

// makeRaw switches fd to raw mode so single key presses arrive unbuffered.
func makeRaw(fd uintptr) (*terminal, error) {
	settings, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	if err != nil {
		return nil, err
	}
	saved := *settings
	settings.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	settings.Oflag &^= unix.OPOST
	settings.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	settings.Cflag &^= unix.CSIZE | unix.PARENB
	settings.Cflag |= unix.CS8
	settings.Cc[unix.VMIN] = 1
	settings.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(int(fd), unix.TCSETS, settings); err != nil {
		return nil, err
	}
	return &terminal{fd: int(fd), saved: &saved}, nil
}

func (t *terminal) restore() {
	if t == nil || t.saved == nil {
		return
	}
	_ = unix.IoctlSetTermios(t.fd, unix.TCSETS, t.saved)
}
