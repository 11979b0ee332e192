package readelf

import (
	"encoding/binary"
	"fmt"
)

type Class uint8

const (
	Class32 Class = 1
	Class64 Class = 2
)

func classFrom(b uint8) (Class, bool) {
	c := Class(b)
	return c, c == Class32 || c == Class64
}

func (c Class) String() string {
	switch c {
	case Class32:
		return "32-bit ELF"
	case Class64:
		return "64-bit ELF"
	default:
		return fmt.Sprintf("Class 0x%02X", uint8(c))
	}
}

type Endian uint8

const (
	Little Endian = 1
	Big    Endian = 2
)

func endianFrom(b uint8) (Endian, bool) {
	e := Endian(b)
	return e, e == Little || e == Big
}

func (e Endian) ByteOrder() binary.ByteOrder {
	if e == Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (e Endian) String() string {
	switch e {
	case Little:
		return "Little Endian"
	case Big:
		return "Big Endian"
	default:
		return fmt.Sprintf("Endian 0x%02X", uint8(e))
	}
}

// Type is the object file type found in e_type.
type Type uint16

const (
	TypeNone Type = 0
	TypeRel  Type = 1
	TypeExec Type = 2
	TypeDyn  Type = 3
	TypeCore Type = 4
)

var typeNames = map[Type]string{
	TypeNone: "None",
	TypeRel:  "Relocatable",
	TypeExec: "Executable",
	TypeDyn:  "Shared",
	TypeCore: "Core",
}

func (t Type) Known() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) String() string {
	if str, ok := typeNames[t]; ok {
		return str
	}
	return fmt.Sprintf("Type 0x%04X", uint16(t))
}

type OSABI uint8

const (
	ABISysV       OSABI = 0
	ABIHPUX       OSABI = 1
	ABINetBSD     OSABI = 2
	ABILinux      OSABI = 3
	ABIHurd       OSABI = 4
	ABISolaris    OSABI = 6
	ABIAIX        OSABI = 7
	ABIIrix       OSABI = 8
	ABIFreeBSD    OSABI = 9
	ABITru64      OSABI = 10
	ABIModesto    OSABI = 11
	ABIOpenBSD    OSABI = 12
	ABIOpenVMS    OSABI = 13
	ABINSK        OSABI = 14
	ABIAros       OSABI = 15
	ABIFenixOS    OSABI = 16
	ABICloudABI   OSABI = 17
	ABIOpenVOS    OSABI = 18
	ABIARM        OSABI = 97
	ABIStandalone OSABI = 255
)

var abiNames = map[OSABI]string{
	ABISysV:       "SysV / Not Specified",
	ABIHPUX:       "HP-UX",
	ABINetBSD:     "NetBSD",
	ABILinux:      "Linux",
	ABIHurd:       "GNU Hurd",
	ABISolaris:    "Solaris",
	ABIAIX:        "AIX",
	ABIIrix:       "Irix",
	ABIFreeBSD:    "FreeBSD",
	ABITru64:      "Tru64",
	ABIModesto:    "Novell Modesto",
	ABIOpenBSD:    "OpenBSD",
	ABIOpenVMS:    "OpenVMS",
	ABINSK:        "NonStop Kernel",
	ABIAros:       "Amiga Research Operating System",
	ABIFenixOS:    "FenixOS",
	ABICloudABI:   "Nuxi CloudABI",
	ABIOpenVOS:    "OpenVOS",
	ABIARM:        "ARM",
	ABIStandalone: "Standalone (embedded)",
}

func (a OSABI) Known() bool {
	_, ok := abiNames[a]
	return ok
}

func (a OSABI) String() string {
	if str, ok := abiNames[a]; ok {
		return str
	}
	return fmt.Sprintf("ABI 0x%02X", uint8(a))
}

type Machine uint16

const (
	MachineNone       Machine = 0x0000
	MachineM32        Machine = 0x0001
	MachineSPARC      Machine = 0x0002
	Machine386        Machine = 0x0003
	Machine68K        Machine = 0x0004
	Machine88K        Machine = 0x0005
	MachineIAMCU      Machine = 0x0006
	Machine860        Machine = 0x0007
	MachineMIPS       Machine = 0x0008
	MachineS370       Machine = 0x0009
	MachineMIPSRS3LE  Machine = 0x000A
	MachinePARISC     Machine = 0x000F
	MachineSPARC32P   Machine = 0x0012
	MachinePPC        Machine = 0x0014
	MachinePPC64      Machine = 0x0015
	MachineS390       Machine = 0x0016
	MachineSPU        Machine = 0x0017
	MachineARM        Machine = 0x0028
	MachineAlpha      Machine = 0x0029
	MachineSH         Machine = 0x002A
	MachineSPARCV9    Machine = 0x002B
	MachineH8300      Machine = 0x002E
	MachineIA64       Machine = 0x0032
	MachineX86_64     Machine = 0x003E
	MachineVAX        Machine = 0x004B
	MachineAVR        Machine = 0x0053
	MachineOpenRISC   Machine = 0x005C
	MachineARCompact  Machine = 0x005D
	MachineXtensa     Machine = 0x005E
	MachineVideoCore  Machine = 0x005F
	MachineMSP430     Machine = 0x0069
	MachineBlackfin   Machine = 0x006A
	MachineNios2      Machine = 0x0071
	MachineAArch64    Machine = 0x00B7
	MachineSTM8       Machine = 0x00BA
	MachineTile64     Machine = 0x00BB
	MachineTilePro    Machine = 0x00BC
	MachineMicroBlaze Machine = 0x00BD
	MachineCUDA       Machine = 0x00BE
	MachineTileGX     Machine = 0x00BF
	MachineZ80        Machine = 0x00DC
	MachineAMDGPU     Machine = 0x00E0
	MachineRISCV      Machine = 0x00F3
	MachineLanai      Machine = 0x00F4
	MachineBPF        Machine = 0x00F7
	MachineCSKY       Machine = 0x00FC
	MachineLoongArch  Machine = 0x0102
)

var machineNames = map[Machine]string{
	0x0000: "NONE",
	0x0001: "Bellmac 32 AT&T WE 32100",
	0x0002: "Solaris SPARC",
	0x0003: "Intel 386",
	0x0004: "Motorola 68K",
	0x0005: "Motorola 88K",
	0x0006: "Intel MCU",
	0x0007: "Intel 80860",
	0x0008: "MIPS",
	0x0009: "IBM System/370",
	0x000A: "MIPS RS3000 Little-Endian",
	0x000F: "Hewlett-Packard PA-RISC",
	0x0011: "Fujitsu VPP500/VPP550",
	0x0012: "Solaris SPARC32 V8+",
	0x0013: "Intel 80960",
	0x0014: "PowerPC",
	0x0015: "PowerPC64",
	0x0016: "IBM System/390",
	0x0017: "IBM SPU/SPC",
	0x0024: "NEC V800",
	0x0025: "Fujitsu FR20",
	0x0026: "TRW RH-32",
	0x0027: "Motorola M*Core / RCE",
	0x0028: "ARM AArch32",
	0x0029: "DEC Alpha",
	0x002A: "Hitachi SuperH",
	0x002B: "Solaris SPARCv9 64-bit",
	0x002C: "Siemens TriCore",
	0x002D: "Argonaut RISC Core",
	0x002E: "Hitachi H8/300",
	0x002F: "Hitachi H8/300H",
	0x0030: "Hitachi H8S",
	0x0031: "Hitachi H8/500",
	0x0032: "Intel IA-64",
	0x0033: "Stanford MIPS-X",
	0x0034: "Motorola ColdFire",
	0x0035: "Motorola 68HC12",
	0x0036: "Fujitsu MMA Multimedia Accelerator",
	0x0037: "Siemens PCP",
	0x0038: "Sony nCPU RISC",
	0x0039: "Denso NDR1",
	0x003A: "Motorola Star*Core",
	0x003B: "Toyota ME16",
	0x003C: "STMicroelectronics ST100",
	0x003D: "Advanced Logic Corp TinyJ",
	0x003E: "AMD x86-64",
	0x003F: "Sony DSP",
	0x0040: "DEC PDP-10",
	0x0041: "DEC PDP-11",
	0x0042: "Siemens FX66",
	0x0043: "STMicroelectronics ST9+ 8/16-bit",
	0x0044: "STMicroelectronics ST7 8-bit",
	0x0045: "Motorola 68HC16",
	0x0046: "Motorola 68HC11",
	0x0047: "Motorola 68HC08",
	0x0048: "Motorola 68HC05",
	0x0049: "Silicon Graphics SVx",
	0x004A: "STMicroelectronics ST19 8-bit",
	0x004B: "Digital VAX",
	0x004C: "CRIS Axis Communications 32-bit",
	0x004D: "Infineon 32-bit Javelin",
	0x004E: "Element 14 64-bit DSP Firepath",
	0x004F: "LSI Logic 16-bit DSP ZSP",
	0x0050: "Donald Knuth's EDU 64-bit",
	0x0051: "Harvard University Machine-Independent",
	0x0052: "SiTera Prism",
	0x0053: "Atmel AVR 8-bit",
	0x0054: "Fujitsu FR30",
	0x0055: "Mitsubishi D10V",
	0x0056: "Mitsubishi D30V",
	0x0057: "NEC v850",
	0x0058: "Mitsubishi M32R",
	0x0059: "Matsushita MN10300",
	0x005A: "Matsushita MN10200",
	0x005B: "picoJava",
	0x005C: "OpenRISC 32-bit",
	0x005D: "ARCompact",
	0x005E: "Tensilica Xtensa",
	0x005F: "Alphamosaic VideoCore",
	0x0060: "Thompson Multimedia General Purpose Processor",
	0x0061: "National Semiconductor 32000 series",
	0x0062: "Tenor Network TPC",
	0x0063: "Trebia SNP 1000",
	0x0064: "STMicroelectronics ST200",
	0x0065: "Ubicom IP2xxx",
	0x0066: "MAX",
	0x0067: "National Semiconductor CompactRISC",
	0x0068: "Fujitsu F2MC16",
	0x0069: "Texas Instruments MSP430",
	0x006A: "Analog Devices Blackfin DSP",
	0x006B: "Seiko Epson S1C33",
	0x006C: "Sharp embedded",
	0x006D: "Arca RISC",
	0x006E: "PKU-Unity Ltd Peking Unicore",
	0x006F: "eXcess 16/32/64-bit",
	0x0070: "Icera Deep Execution Processor",
	0x0071: "Altera Nios II soft-core",
	0x0072: "National Semiconductor CompactRISC CRX",
	0x0073: "Motorola XGATE",
	0x0074: "Infineon C16x/XC16x",
	0x0075: "Renesas M16C",
	0x0076: "Microchip Technology dsPIC30F",
	0x0077: "Freescale Communication Engine RISC",
	0x0078: "Renesas M32C",
	0x0083: "Altium TSK3000",
	0x0084: "Freescale RS08",
	0x0085: "Analog Devices SHARC 32-bit DSP",
	0x0086: "Cyan Technology eCOG2",
	0x0087: "Sunplus S+core7 RISC",
	0x0088: "New Japan Radio 24-bit DSP",
	0x0089: "Broadcome VideoCore III",
	0x008A: "Lattice FPGA RISC",
	0x008B: "Seiko Epson C17",
	0x008C: "Texas Instruments TMS320C6000 DSP",
	0x008D: "Texas Instruments TMS320C2000 DSP",
	0x008E: "Texas Instruments TMS320C55x DSP",
	0x008F: "Texas Instruments Application Specific RISC",
	0x0090: "Texas Instruments Programmable Realtime Unit",
	0x00A0: "STMicroelectronics 64bit VLIW DSP",
	0x00A1: "Cypress M8C",
	0x00A2: "Renesas R32C",
	0x00A3: "NXP Semiconductors TriMedia architecture",
	0x00A4: "QUALCOMM DSP6",
	0x00A5: "Intel 8051",
	0x00A6: "STMicroelectronics STxP7x RISC",
	0x00A7: "Andes Technology embedded RISC",
	0x00A8: "Cyan Technology eCOG1X",
	0x00A9: "Dallas Semiconductor MAXQ30 Core",
	0x00AA: "New Japan Radio 16-bit DSP",
	0x00AB: "M2000 Reconfigurable RISC Manik",
	0x00AC: "Cray Inc. NV2 vector architecture",
	0x00AD: "Renesas RX",
	0x00AE: "Imagination Technologies META",
	0x00AF: "MCST Elbrus",
	0x00B0: "Cyan Technology eCOG16",
	0x00B1: "National Semiconductor CompactRISC CR16 16-bit",
	0x00B2: "Freescale Extended Time Processing Unit",
	0x00B3: "Infineon Technologies SLE9X",
	0x00B4: "Intel L10M",
	0x00B5: "Intel K10M",
	0x00B7: "ARM 64-bit",
	0x00B9: "Atmel Corporation 32-bit",
	0x00BA: "STMicroeletronics STM8 8-bit",
	0x00BB: "Tilera TILE64 multicore",
	0x00BC: "Tilera TILEPro multicore",
	0x00BD: "Xilinx MicroBlaze 32-bit RISC",
	0x00BE: "NVIDIA CUDA",
	0x00BF: "Tilera TILE-Gx multicore",
	0x00C0: "CloudShield",
	0x00C1: "KIPO-KAIST Core-A 1st generation",
	0x00C2: "KIPO-KAIST Core-A 2nd generation",
	0x00C3: "Synopsys ARCompact V2",
	0x00C4: "Open8 8-bit RISC",
	0x00C5: "Renesas RL78",
	0x00C6: "Broadcom VideoCore V",
	0x00C7: "Renesas 78KOR",
	0x00C8: "Freescale 56800EX Digital Signal Controller",
	0x00C9: "Beyond BA1 CPU",
	0x00CA: "Beyond BA2 CPU",
	0x00CB: "XMOS xCORE",
	0x00CC: "Microchip 8-bit PIC(r)",
	0x00CD: "Intel Graphics Technology",
	0x00D2: "KM211 KM32 32-bit",
	0x00D3: "KM211 KMX32 32-bit",
	0x00D4: "KM211 KMX16 16-bit",
	0x00D5: "KM211 KMX8 8-bit",
	0x00D6: "KM211 KVARC",
	0x00D7: "Paneve CDP",
	0x00D8: "Cognitive Smart Memory Processor",
	0x00D9: "Bluechip Systems CoolEngine",
	0x00DA: "Nanoradio Optimized RISC",
	0x00DB: "CSR Kalimba",
	0x00DC: "Zilog Z80",
	0x00DD: "Controls and Data Services VISIUMcore",
	0x00DE: "FTDI Chip FT32 high performance 32-bit RISC",
	0x00DF: "Moxie",
	0x00E0: "AMD GPU",
	0x00F3: "RISC-V",
	0x00F4: "Lanai",
	0x00F5: "CEVA",
	0x00F6: "CEVA X2",
	0x00F7: "Linux BPF VM",
	0x00F8: "Graphcore Intelligent Processing Unit",
	0x00F9: "Imagination Technologies",
	0x00FA: "Netronome Flow Processor",
	0x00FB: "NEC Vector Engine",
	0x00FC: "C-SKY",
	0x00FD: "Synopsys ARCv2.3 64-bit",
	0x00FE: "KMOS Technology MCS 6502",
	0x00FF: "Synopsys ARCv2.3 32-bit",
	0x0100: "Kalray VLIW core of MPPA",
	0x0101: "WDC 65816/65C816",
	0x0102: "LoongArch",
	0x0103: "ChipON Micro-Electronic Co. KungFu 32",
	0x0104: "LAPIS nX-U16/U8",
	0x0105: "Tachyum",
	0x0106: "NXP 56800V4 Digital Signal Controller",
	0x0108: "AMD/Xilinx AIEngine",
	0x0109: "SIMa.ai Neural Network",
	0x010A: "Cambricon BANG",
	0x010B: "Loongson LoongGPU",

	// unofficial values used by binutils
	0x9026: "Alpha 9026",
	0x1223: "Adapteva Ephiphany",
	0x2530: "Morpho MT",
	0x4157: "Webassembly",
	0x4DEF: "Freescale S12Z",
	0x5AA5: "DLX",
	0x5441: "FRV (cygnus)",
	0x4688: "Infineon Technologies 16-bit microcontroller with C166-V2 core",
	0xAD45: "Xstormy16",
	0xFEBA: "Vitesse IQ2000",
	0xFEBB: "NIOS",
	0x1057: "AVR (old)",
	0x1059: "MSP430 (old)",
	0x3330: "FR30 (cygnus)",
	0x7650: "D10V (cygnus)",
	0x7676: "D30V (cygnus)",
	0x8217: "IP2K (old)",
	0x9025: "PowerPC (cygnus)",
	0x9041: "M32R (cygnus)",
	0x9080: "V850 (cygnus)",
	0xA390: "S/390 (old)",
	0xABC7: "Xtensa (old)",
	0xBAAB: "Microblaze (old)",
	0xBEEF: "MN10300 (cygnus)",
	0xDEAD: "MN10200 (cygnus)",
	0xF00D: "Toyota MeP",
	0xFEB0: "Renesas M32C (old)",
	0xFEED: "Moxie (old)",
}

func (m Machine) Known() bool {
	_, ok := machineNames[m]
	return ok
}

func (m Machine) String() string {
	if str, ok := machineNames[m]; ok {
		return str
	}
	return fmt.Sprintf("Machine 0x%04X", uint16(m))
}
