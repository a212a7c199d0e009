//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

static void qpRunOnMain(void (^block)(void)) {
	if ([NSThread isMainThread]) {
		block();
	} else {
		dispatch_sync(dispatch_get_main_queue(), block);
	}
}

typedef struct {
	long number;
	int wails;
	int panel;
	int visible;
} qpWindowInfo;

// Lists NSApp's windows, hidden ones included, into out.
static int qpListWindows(qpWindowInfo *out, int max) {
	__block int n = 0;
	qpRunOnMain(^{
		Class wailsClass = NSClassFromString(@"WailsWindow");
		for (NSWindow *w in [NSApp windows]) {
			if (n >= max) {
				break;
			}
			out[n].number = (long)[w windowNumber];
			out[n].wails = (wailsClass != nil && [w isKindOfClass:wailsClass]) ? 1 : 0;
			out[n].panel = [w isKindOfClass:[NSPanel class]] ? 1 : 0;
			out[n].visible = [w isVisible] ? 1 : 0;
			n++;
		}
	});
	return n;
}

// Must run on the main thread.
static NSWindow *qpWindowByNumber(long number) {
	for (NSWindow *w in [NSApp windows]) {
		if ((long)[w windowNumber] == number) {
			return w;
		}
	}
	return nil;
}

static int qpSetActivationPolicy(int regular) {
	__block BOOL ok = NO;
	qpRunOnMain(^{
		NSApplicationActivationPolicy policy = regular
			? NSApplicationActivationPolicyRegular
			: NSApplicationActivationPolicyAccessory;
		ok = [NSApp setActivationPolicy:policy];
	});
	return ok ? 1 : 0;
}

// Returns -1 when the window no longer exists.
static int qpWindowVisible(long number) {
	__block int visible = -1;
	qpRunOnMain(^{
		NSWindow *w = qpWindowByNumber(number);
		if (w != nil) {
			visible = [w isVisible] ? 1 : 0;
		}
	});
	return visible;
}

static int qpFocusWindow(long number) {
	__block int ok = 0;
	qpRunOnMain(^{
		[NSApp activateIgnoringOtherApps:YES];
		NSWindow *w = qpWindowByNumber(number);
		if (w != nil) {
			[w makeKeyAndOrderFront:nil];
			ok = 1;
		}
	});
	return ok;
}
*/
import "C"

import (
	"errors"
	"sync"
)

const maxListedWindows = 32

// Native talks to AppKit through NSApp.
type Native struct {
	mu sync.Mutex
	// number caches the main window's windowNumber. Hidden windows keep
	// their number, so the cache survives Hide/Show cycles.
	number int64
}

// New returns the AppKit helpers. title is unused on macOS: the main window
// is identified by its Wails window class.
func New(_ string) (*Native, error) {
	return &Native{}, nil
}

// VisibilitySupported reports that AppKit exposes live window visibility.
func (n *Native) VisibilitySupported() bool { return true }

// IsVisible reports whether the main window is on screen.
func (n *Native) IsVisible() (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for range 2 {
		number, err := n.window()
		if err != nil {
			return false, err
		}
		switch C.qpWindowVisible(C.long(number)) {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
		// The cached window is gone; look it up once more.
		n.number = 0
	}
	return false, ErrWindowNotFound
}

// Focus activates the application and makes the main window key.
func (n *Native) Focus() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	number, err := n.window()
	if err != nil {
		return err
	}
	if C.qpFocusWindow(C.long(number)) == 0 {
		n.number = 0
		return ErrWindowNotFound
	}
	return nil
}

// window returns the cached window number, listing NSApp's windows on a
// miss. Callers hold n.mu.
func (n *Native) window() (int64, error) {
	if n.number > 0 {
		return n.number, nil
	}
	var infos [maxListedWindows]C.qpWindowInfo
	count := int(C.qpListWindows(&infos[0], C.int(len(infos))))
	windows := make([]windowInfo, 0, count)
	for _, info := range infos[:count] {
		windows = append(windows, windowInfo{
			Number:  int64(info.number),
			Wails:   info.wails != 0,
			Panel:   info.panel != 0,
			Visible: info.visible != 0,
		})
	}
	number, ok := pickMainWindow(windows)
	if !ok {
		return 0, ErrWindowNotFound
	}
	n.number = number
	return number, nil
}

// SetSkipTaskbar has no macOS equivalent; the dock icon is controlled by the
// activation policy.
func (n *Native) SetSkipTaskbar(bool) error { return ErrUnsupported }

// SetActivationPolicy switches between the regular policy (dock icon shown)
// and the accessory policy (dock icon hidden).
func (n *Native) SetActivationPolicy(regular bool) error {
	flag := C.int(0)
	if regular {
		flag = 1
	}
	if C.qpSetActivationPolicy(flag) == 0 {
		return errors.New("NSApp rejected activation policy")
	}
	return nil
}

// Close releases nothing on macOS.
func (n *Native) Close() error { return nil }
