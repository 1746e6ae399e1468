// Package embsh is an embedded debug shell for Linux devices. An
// application registers named commands once and exposes them over any
// combination of transports: a multi-session telnet server
// (pkt.systems/embsh/telnetserver), the local console
// (pkt.systems/embsh/console), and a serial link
// (pkt.systems/embsh/serial). All transports share one command registry
// and one byte-driven line editor (pkt.systems/embsh/editor).
package embsh
