package keycode

import "chatkeys/internal/keys"

// Reference: https://learn.microsoft.com/en-us/windows/win32/inputdev/virtual-key-codes
var windowsKeys = map[keys.Key]WinKey{
	keys.KeyAlt:          {VK: 0xA4},
	keys.KeyAltGr:        {VK: 0xA5, Extended: true},
	keys.KeyControlLeft:  {VK: 0xA2},
	keys.KeyControlRight: {VK: 0xA3, Extended: true},
	keys.KeyShiftLeft:    {VK: 0xA0},
	keys.KeyShiftRight:   {VK: 0xA1},
	keys.KeyMetaLeft:     {VK: 0x5B, Extended: true},
	keys.KeyMetaRight:    {VK: 0x5C, Extended: true},

	keys.KeyBackspace:   {VK: 0x08},
	keys.KeyCapsLock:    {VK: 0x14},
	keys.KeyDelete:      {VK: 0x2E, Extended: true},
	keys.KeyEnd:         {VK: 0x23, Extended: true},
	keys.KeyEscape:      {VK: 0x1B},
	keys.KeyHome:        {VK: 0x24, Extended: true},
	keys.KeyInsert:      {VK: 0x2D, Extended: true},
	keys.KeyPageDown:    {VK: 0x22, Extended: true},
	keys.KeyPageUp:      {VK: 0x21, Extended: true},
	keys.KeyReturn:      {VK: 0x0D},
	keys.KeySpace:       {VK: 0x20},
	keys.KeyTab:         {VK: 0x09},
	keys.KeyPrintScreen: {VK: 0x2C, Extended: true},
	keys.KeyScrollLock:  {VK: 0x91},
	keys.KeyPause:       {VK: 0x13},
	keys.KeyNumLock:     {VK: 0x90, Extended: true},

	keys.KeyUpArrow:    {VK: 0x26, Extended: true},
	keys.KeyDownArrow:  {VK: 0x28, Extended: true},
	keys.KeyLeftArrow:  {VK: 0x25, Extended: true},
	keys.KeyRightArrow: {VK: 0x27, Extended: true},

	keys.KeyF1:  {VK: 0x70},
	keys.KeyF2:  {VK: 0x71},
	keys.KeyF3:  {VK: 0x72},
	keys.KeyF4:  {VK: 0x73},
	keys.KeyF5:  {VK: 0x74},
	keys.KeyF6:  {VK: 0x75},
	keys.KeyF7:  {VK: 0x76},
	keys.KeyF8:  {VK: 0x77},
	keys.KeyF9:  {VK: 0x78},
	keys.KeyF10: {VK: 0x79},
	keys.KeyF11: {VK: 0x7A},
	keys.KeyF12: {VK: 0x7B},

	keys.KeyNum1: {VK: 0x31},
	keys.KeyNum2: {VK: 0x32},
	keys.KeyNum3: {VK: 0x33},
	keys.KeyNum4: {VK: 0x34},
	keys.KeyNum5: {VK: 0x35},
	keys.KeyNum6: {VK: 0x36},
	keys.KeyNum7: {VK: 0x37},
	keys.KeyNum8: {VK: 0x38},
	keys.KeyNum9: {VK: 0x39},
	keys.KeyNum0: {VK: 0x30},

	keys.KeyA: {VK: 0x41},
	keys.KeyB: {VK: 0x42},
	keys.KeyC: {VK: 0x43},
	keys.KeyD: {VK: 0x44},
	keys.KeyE: {VK: 0x45},
	keys.KeyF: {VK: 0x46},
	keys.KeyG: {VK: 0x47},
	keys.KeyH: {VK: 0x48},
	keys.KeyI: {VK: 0x49},
	keys.KeyJ: {VK: 0x4A},
	keys.KeyK: {VK: 0x4B},
	keys.KeyL: {VK: 0x4C},
	keys.KeyM: {VK: 0x4D},
	keys.KeyN: {VK: 0x4E},
	keys.KeyO: {VK: 0x4F},
	keys.KeyP: {VK: 0x50},
	keys.KeyQ: {VK: 0x51},
	keys.KeyR: {VK: 0x52},
	keys.KeyS: {VK: 0x53},
	keys.KeyT: {VK: 0x54},
	keys.KeyU: {VK: 0x55},
	keys.KeyV: {VK: 0x56},
	keys.KeyW: {VK: 0x57},
	keys.KeyX: {VK: 0x58},
	keys.KeyY: {VK: 0x59},
	keys.KeyZ: {VK: 0x5A},

	keys.KeyBackQuote:     {VK: 0xC0},
	keys.KeyMinus:         {VK: 0xBD},
	keys.KeyEqual:         {VK: 0xBB},
	keys.KeyLeftBracket:   {VK: 0xDB},
	keys.KeyRightBracket:  {VK: 0xDD},
	keys.KeySemiColon:     {VK: 0xBA},
	keys.KeyQuote:         {VK: 0xDE},
	keys.KeyBackSlash:     {VK: 0xDC},
	keys.KeyIntlBackslash: {VK: 0xE2},
	keys.KeyComma:         {VK: 0xBC},
	keys.KeyDot:           {VK: 0xBE},
	keys.KeySlash:         {VK: 0xBF},

	keys.KeyKpReturn:   {VK: 0x0D, Extended: true},
	keys.KeyKpMinus:    {VK: 0x6D},
	keys.KeyKpPlus:     {VK: 0x6B},
	keys.KeyKpMultiply: {VK: 0x6A},
	keys.KeyKpDivide:   {VK: 0x6F, Extended: true},
	keys.KeyKp0:        {VK: 0x60},
	keys.KeyKp1:        {VK: 0x61},
	keys.KeyKp2:        {VK: 0x62},
	keys.KeyKp3:        {VK: 0x63},
	keys.KeyKp4:        {VK: 0x64},
	keys.KeyKp5:        {VK: 0x65},
	keys.KeyKp6:        {VK: 0x66},
	keys.KeyKp7:        {VK: 0x67},
	keys.KeyKp8:        {VK: 0x68},
	keys.KeyKp9:        {VK: 0x69},
	keys.KeyKpDelete:   {VK: 0x6E},
}

// Reference: Carbon HIToolbox Events.h (kVK_*)
var macKeys = map[keys.Key]uint16{
	keys.KeyAlt:          0x3A,
	keys.KeyAltGr:        0x3D,
	keys.KeyControlLeft:  0x3B,
	keys.KeyControlRight: 0x3E,
	keys.KeyShiftLeft:    0x38,
	keys.KeyShiftRight:   0x3C,
	keys.KeyMetaLeft:     0x37,
	keys.KeyMetaRight:    0x36,
	keys.KeyFunction:     0x3F,

	keys.KeyBackspace: 0x33,
	keys.KeyCapsLock:  0x39,
	keys.KeyDelete:    0x75,
	keys.KeyEnd:       0x77,
	keys.KeyEscape:    0x35,
	keys.KeyHome:      0x73,
	keys.KeyInsert:    0x72,
	keys.KeyPageDown:  0x79,
	keys.KeyPageUp:    0x74,
	keys.KeyReturn:    0x24,
	keys.KeySpace:     0x31,
	keys.KeyTab:       0x30,
	keys.KeyNumLock:   0x47,

	keys.KeyUpArrow:    0x7E,
	keys.KeyDownArrow:  0x7D,
	keys.KeyLeftArrow:  0x7B,
	keys.KeyRightArrow: 0x7C,

	keys.KeyF1:  0x7A,
	keys.KeyF2:  0x78,
	keys.KeyF3:  0x63,
	keys.KeyF4:  0x76,
	keys.KeyF5:  0x60,
	keys.KeyF6:  0x61,
	keys.KeyF7:  0x62,
	keys.KeyF8:  0x64,
	keys.KeyF9:  0x65,
	keys.KeyF10: 0x6D,
	keys.KeyF11: 0x67,
	keys.KeyF12: 0x6F,

	keys.KeyNum1: 0x12,
	keys.KeyNum2: 0x13,
	keys.KeyNum3: 0x14,
	keys.KeyNum4: 0x15,
	keys.KeyNum5: 0x17,
	keys.KeyNum6: 0x16,
	keys.KeyNum7: 0x1A,
	keys.KeyNum8: 0x1C,
	keys.KeyNum9: 0x19,
	keys.KeyNum0: 0x1D,

	keys.KeyA: 0x00,
	keys.KeyB: 0x0B,
	keys.KeyC: 0x08,
	keys.KeyD: 0x02,
	keys.KeyE: 0x0E,
	keys.KeyF: 0x03,
	keys.KeyG: 0x05,
	keys.KeyH: 0x04,
	keys.KeyI: 0x22,
	keys.KeyJ: 0x26,
	keys.KeyK: 0x28,
	keys.KeyL: 0x25,
	keys.KeyM: 0x2E,
	keys.KeyN: 0x2D,
	keys.KeyO: 0x1F,
	keys.KeyP: 0x23,
	keys.KeyQ: 0x0C,
	keys.KeyR: 0x0F,
	keys.KeyS: 0x01,
	keys.KeyT: 0x11,
	keys.KeyU: 0x20,
	keys.KeyV: 0x09,
	keys.KeyW: 0x0D,
	keys.KeyX: 0x07,
	keys.KeyY: 0x10,
	keys.KeyZ: 0x06,

	keys.KeyBackQuote:     0x32,
	keys.KeyMinus:         0x1B,
	keys.KeyEqual:         0x18,
	keys.KeyLeftBracket:   0x21,
	keys.KeyRightBracket:  0x1E,
	keys.KeySemiColon:     0x29,
	keys.KeyQuote:         0x27,
	keys.KeyBackSlash:     0x2A,
	keys.KeyIntlBackslash: 0x0A,
	keys.KeyComma:         0x2B,
	keys.KeyDot:           0x2F,
	keys.KeySlash:         0x2C,

	keys.KeyKpReturn:   0x4C,
	keys.KeyKpMinus:    0x4E,
	keys.KeyKpPlus:     0x45,
	keys.KeyKpMultiply: 0x43,
	keys.KeyKpDivide:   0x4B,
	keys.KeyKp0:        0x52,
	keys.KeyKp1:        0x53,
	keys.KeyKp2:        0x54,
	keys.KeyKp3:        0x55,
	keys.KeyKp4:        0x56,
	keys.KeyKp5:        0x57,
	keys.KeyKp6:        0x58,
	keys.KeyKp7:        0x59,
	keys.KeyKp8:        0x5B,
	keys.KeyKp9:        0x5C,
	keys.KeyKpDelete:   0x41,
}

// Names accepted by robotgo.KeyToggle.
var robotgoKeys = map[keys.Key]string{
	keys.KeyAlt:          "lalt",
	keys.KeyAltGr:        "ralt",
	keys.KeyControlLeft:  "lctrl",
	keys.KeyControlRight: "rctrl",
	keys.KeyShiftLeft:    "lshift",
	keys.KeyShiftRight:   "rshift",
	keys.KeyMetaLeft:     "lcmd",
	keys.KeyMetaRight:    "rcmd",

	keys.KeyBackspace:   "backspace",
	keys.KeyCapsLock:    "capslock",
	keys.KeyDelete:      "delete",
	keys.KeyEnd:         "end",
	keys.KeyEscape:      "esc",
	keys.KeyHome:        "home",
	keys.KeyInsert:      "insert",
	keys.KeyPageDown:    "pagedown",
	keys.KeyPageUp:      "pageup",
	keys.KeyReturn:      "enter",
	keys.KeySpace:       "space",
	keys.KeyTab:         "tab",
	keys.KeyPrintScreen: "printscreen",
	keys.KeyNumLock:     "num_lock",

	keys.KeyUpArrow:    "up",
	keys.KeyDownArrow:  "down",
	keys.KeyLeftArrow:  "left",
	keys.KeyRightArrow: "right",

	keys.KeyF1:  "f1",
	keys.KeyF2:  "f2",
	keys.KeyF3:  "f3",
	keys.KeyF4:  "f4",
	keys.KeyF5:  "f5",
	keys.KeyF6:  "f6",
	keys.KeyF7:  "f7",
	keys.KeyF8:  "f8",
	keys.KeyF9:  "f9",
	keys.KeyF10: "f10",
	keys.KeyF11: "f11",
	keys.KeyF12: "f12",

	keys.KeyNum1: "1",
	keys.KeyNum2: "2",
	keys.KeyNum3: "3",
	keys.KeyNum4: "4",
	keys.KeyNum5: "5",
	keys.KeyNum6: "6",
	keys.KeyNum7: "7",
	keys.KeyNum8: "8",
	keys.KeyNum9: "9",
	keys.KeyNum0: "0",

	keys.KeyA: "a",
	keys.KeyB: "b",
	keys.KeyC: "c",
	keys.KeyD: "d",
	keys.KeyE: "e",
	keys.KeyF: "f",
	keys.KeyG: "g",
	keys.KeyH: "h",
	keys.KeyI: "i",
	keys.KeyJ: "j",
	keys.KeyK: "k",
	keys.KeyL: "l",
	keys.KeyM: "m",
	keys.KeyN: "n",
	keys.KeyO: "o",
	keys.KeyP: "p",
	keys.KeyQ: "q",
	keys.KeyR: "r",
	keys.KeyS: "s",
	keys.KeyT: "t",
	keys.KeyU: "u",
	keys.KeyV: "v",
	keys.KeyW: "w",
	keys.KeyX: "x",
	keys.KeyY: "y",
	keys.KeyZ: "z",

	keys.KeyBackQuote:    "`",
	keys.KeyMinus:        "-",
	keys.KeyEqual:        "=",
	keys.KeyLeftBracket:  "[",
	keys.KeyRightBracket: "]",
	keys.KeySemiColon:    ";",
	keys.KeyQuote:        "'",
	keys.KeyBackSlash:    "\\",
	keys.KeyComma:        ",",
	keys.KeyDot:          ".",
	keys.KeySlash:        "/",

	keys.KeyKpReturn:   "num_enter",
	keys.KeyKpMinus:    "num-",
	keys.KeyKpPlus:     "num+",
	keys.KeyKpMultiply: "num*",
	keys.KeyKpDivide:   "num/",
	keys.KeyKp0:        "num0",
	keys.KeyKp1:        "num1",
	keys.KeyKp2:        "num2",
	keys.KeyKp3:        "num3",
	keys.KeyKp4:        "num4",
	keys.KeyKp5:        "num5",
	keys.KeyKp6:        "num6",
	keys.KeyKp7:        "num7",
	keys.KeyKp8:        "num8",
	keys.KeyKp9:        "num9",
	keys.KeyKpDelete:   "num.",
}

// Reference: X11/keysymdef.h
var x11Keys = map[keys.Key]uint16{
	keys.KeyAlt:          0xFFE9,
	keys.KeyAltGr:        0xFE03,
	keys.KeyControlLeft:  0xFFE3,
	keys.KeyControlRight: 0xFFE4,
	keys.KeyShiftLeft:    0xFFE1,
	keys.KeyShiftRight:   0xFFE2,
	keys.KeyMetaLeft:     0xFFEB,
	keys.KeyMetaRight:    0xFFEC,

	keys.KeyBackspace:   0xFF08,
	keys.KeyCapsLock:    0xFFE5,
	keys.KeyDelete:      0xFFFF,
	keys.KeyEnd:         0xFF57,
	keys.KeyEscape:      0xFF1B,
	keys.KeyHome:        0xFF50,
	keys.KeyInsert:      0xFF63,
	keys.KeyPageDown:    0xFF56,
	keys.KeyPageUp:      0xFF55,
	keys.KeyReturn:      0xFF0D,
	keys.KeySpace:       0x0020,
	keys.KeyTab:         0xFF09,
	keys.KeyPrintScreen: 0xFF61,
	keys.KeyScrollLock:  0xFF14,
	keys.KeyPause:       0xFF13,
	keys.KeyNumLock:     0xFF7F,

	keys.KeyUpArrow:    0xFF52,
	keys.KeyDownArrow:  0xFF54,
	keys.KeyLeftArrow:  0xFF51,
	keys.KeyRightArrow: 0xFF53,

	keys.KeyF1:  0xFFBE,
	keys.KeyF2:  0xFFBF,
	keys.KeyF3:  0xFFC0,
	keys.KeyF4:  0xFFC1,
	keys.KeyF5:  0xFFC2,
	keys.KeyF6:  0xFFC3,
	keys.KeyF7:  0xFFC4,
	keys.KeyF8:  0xFFC5,
	keys.KeyF9:  0xFFC6,
	keys.KeyF10: 0xFFC7,
	keys.KeyF11: 0xFFC8,
	keys.KeyF12: 0xFFC9,

	keys.KeyNum1: 0x0031,
	keys.KeyNum2: 0x0032,
	keys.KeyNum3: 0x0033,
	keys.KeyNum4: 0x0034,
	keys.KeyNum5: 0x0035,
	keys.KeyNum6: 0x0036,
	keys.KeyNum7: 0x0037,
	keys.KeyNum8: 0x0038,
	keys.KeyNum9: 0x0039,
	keys.KeyNum0: 0x0030,

	keys.KeyA: 0x0061,
	keys.KeyB: 0x0062,
	keys.KeyC: 0x0063,
	keys.KeyD: 0x0064,
	keys.KeyE: 0x0065,
	keys.KeyF: 0x0066,
	keys.KeyG: 0x0067,
	keys.KeyH: 0x0068,
	keys.KeyI: 0x0069,
	keys.KeyJ: 0x006A,
	keys.KeyK: 0x006B,
	keys.KeyL: 0x006C,
	keys.KeyM: 0x006D,
	keys.KeyN: 0x006E,
	keys.KeyO: 0x006F,
	keys.KeyP: 0x0070,
	keys.KeyQ: 0x0071,
	keys.KeyR: 0x0072,
	keys.KeyS: 0x0073,
	keys.KeyT: 0x0074,
	keys.KeyU: 0x0075,
	keys.KeyV: 0x0076,
	keys.KeyW: 0x0077,
	keys.KeyX: 0x0078,
	keys.KeyY: 0x0079,
	keys.KeyZ: 0x007A,

	keys.KeyBackQuote:     0x0060,
	keys.KeyMinus:         0x002D,
	keys.KeyEqual:         0x003D,
	keys.KeyLeftBracket:   0x005B,
	keys.KeyRightBracket:  0x005D,
	keys.KeySemiColon:     0x003B,
	keys.KeyQuote:         0x0027,
	keys.KeyBackSlash:     0x005C,
	keys.KeyIntlBackslash: 0x003C,
	keys.KeyComma:         0x002C,
	keys.KeyDot:           0x002E,
	keys.KeySlash:         0x002F,

	keys.KeyKpReturn:   0xFF8D,
	keys.KeyKpMinus:    0xFFAD,
	keys.KeyKpPlus:     0xFFAB,
	keys.KeyKpMultiply: 0xFFAA,
	keys.KeyKpDivide:   0xFFAF,
	keys.KeyKp0:        0xFFB0,
	keys.KeyKp1:        0xFFB1,
	keys.KeyKp2:        0xFFB2,
	keys.KeyKp3:        0xFFB3,
	keys.KeyKp4:        0xFFB4,
	keys.KeyKp5:        0xFFB5,
	keys.KeyKp6:        0xFFB6,
	keys.KeyKp7:        0xFFB7,
	keys.KeyKp8:        0xFFB8,
	keys.KeyKp9:        0xFFB9,
	keys.KeyKpDelete:   0xFFAE,
}
