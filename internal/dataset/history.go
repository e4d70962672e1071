package dataset

// record is one row of the curated history: monthly or event-driven closes, irregularly
// spaced. Columns: date, cpi, rate, m2 ($T), unemployment, sp500, nasdaq, bitcoin,
// ethereum, gold.
type record struct {
	date                                   string
	cpi, rate, m2, unemp                   float64
	sp500, nasdaq, bitcoin, ethereum, gold float64
}

var history = []record{
	// 2015
	{"2015-01-01", 233.7, 0.11, 11.7, 5.7, 2058, 4736, 314, 0.70, 1282},
	{"2015-06-01", 238.6, 0.13, 11.9, 5.3, 2063, 5070, 262, 0.85, 1180},
	{"2015-12-01", 236.5, 0.24, 12.3, 5.0, 2043, 5007, 430, 0.90, 1060},

	// 2016
	{"2016-06-01", 241.0, 0.38, 12.7, 4.9, 2098, 4842, 670, 12.5, 1280},
	{"2016-12-01", 241.4, 0.54, 13.1, 4.7, 2238, 5383, 960, 8.0, 1151},

	// 2017
	{"2017-03-01", 243.8, 0.79, 13.3, 4.4, 2362, 5911, 1080, 50, 1230},
	{"2017-06-01", 244.9, 1.06, 13.5, 4.3, 2423, 6140, 2480, 260, 1250},
	{"2017-12-15", 246.5, 1.30, 13.8, 4.1, 2675, 6930, 19400, 720, 1302},

	// 2018
	{"2018-02-01", 248.9, 1.42, 13.9, 4.1, 2695, 7115, 9000, 900, 1330},
	{"2018-09-01", 252.4, 2.00, 14.1, 3.7, 2901, 7900, 6500, 280, 1200},
	{"2018-12-24", 251.2, 2.40, 14.3, 3.9, 2351, 6192, 3800, 130, 1250},

	// 2019
	{"2019-06-01", 256.1, 2.38, 14.7, 3.6, 2940, 8000, 8500, 260, 1380},
	{"2019-12-31", 256.9, 1.55, 15.3, 3.6, 3230, 8972, 7200, 130, 1517},

	// 2020
	{"2020-02-19", 258.6, 1.58, 15.4, 3.5, 3386, 9817, 9600, 280, 1590},
	{"2020-03-23", 258.1, 0.05, 16.0, 14.7, 2237, 6860, 6400, 130, 1580},
	{"2020-08-01", 259.9, 0.09, 18.3, 8.4, 3500, 11700, 11500, 380, 1975},
	{"2020-12-31", 260.4, 0.09, 19.1, 6.7, 3756, 12888, 29000, 730, 1895},

	// 2021
	{"2021-04-15", 267.0, 0.07, 20.1, 6.1, 4180, 14000, 63000, 2400, 1780},
	{"2021-11-10", 277.9, 0.08, 21.3, 4.2, 4700, 16200, 68700, 4800, 1790},

	// 2022
	{"2022-01-03", 281.1, 0.08, 21.6, 4.0, 4796, 15832, 47000, 3800, 1820},
	{"2022-06-15", 296.3, 1.58, 21.6, 3.6, 3666, 10646, 20000, 1100, 1850},
	{"2022-10-13", 298.0, 3.08, 21.4, 3.7, 3491, 10088, 19000, 1200, 1665},
	{"2022-12-31", 296.7, 4.33, 21.2, 3.5, 3839, 10466, 16500, 1190, 1800},

	// 2023
	{"2023-03-13", 301.8, 4.58, 21.0, 3.5, 3855, 11188, 24000, 1680, 1990},
	{"2023-07-31", 305.6, 5.33, 20.9, 3.5, 4588, 14346, 29200, 1860, 1965},
	{"2023-10-27", 307.6, 5.33, 20.8, 3.8, 4117, 12643, 34000, 1780, 1985},
	{"2023-12-29", 306.7, 5.33, 20.8, 3.7, 4769, 15011, 42000, 2300, 2065},

	// 2024
	{"2024-01-31", 308.4, 5.33, 20.8, 3.7, 4845, 15164, 42500, 2280, 2050},
	{"2024-02-29", 310.3, 5.33, 20.8, 3.9, 5096, 16091, 61000, 3300, 2085},
	{"2024-03-31", 312.3, 5.33, 20.9, 3.8, 5254, 16379, 71000, 3600, 2250},
	{"2024-04-30", 313.5, 5.33, 20.9, 3.9, 5035, 15657, 60000, 3000, 2320},
	{"2024-05-31", 314.0, 5.33, 21.0, 4.0, 5277, 16735, 67500, 3750, 2365},
	{"2024-06-30", 314.1, 5.33, 21.0, 4.1, 5460, 17732, 62000, 3400, 2330},
	{"2024-07-31", 314.5, 5.33, 21.1, 4.3, 5522, 17599, 66000, 3300, 2450},
	{"2024-08-05", 314.8, 5.33, 21.1, 4.2, 5186, 16200, 54000, 2300, 2480},
	{"2024-08-30", 314.8, 5.33, 21.1, 4.2, 5648, 17713, 59000, 2500, 2540},
	{"2024-09-18", 315.0, 4.83, 21.2, 4.1, 5618, 17573, 60000, 2350, 2590},
	{"2024-09-30", 315.3, 4.83, 21.2, 4.1, 5762, 18189, 63300, 2600, 2650},
	{"2024-10-31", 315.5, 4.83, 21.2, 4.1, 5705, 18095, 70000, 2500, 2790},
	{"2024-11-06", 315.6, 4.83, 21.2, 4.1, 5929, 18983, 75000, 2800, 2750},
	{"2024-11-30", 315.7, 4.58, 21.3, 4.2, 6032, 19200, 95000, 3600, 2685},
	{"2024-12-31", 315.8, 4.58, 21.3, 4.2, 5980, 19000, 96000, 3400, 2620},

	// 2025
	{"2025-01-31", 316.1, 4.58, 21.4, 4.3, 6120, 19800, 98000, 3300, 2639},
	{"2025-02-28", 316.3, 4.58, 21.4, 4.3, 6200, 20200, 96500, 3100, 2800},
	{"2025-03-31", 317.0, 4.33, 21.5, 4.2, 5612, 17850, 85000, 2950, 3200},
	{"2025-04-30", 317.8, 4.33, 21.86, 4.2, 5750, 17461, 95000, 3200, 3500},
	{"2025-05-31", 318.5, 4.33, 21.94, 4.2, 6100, 19200, 111500, 3800, 3350},
	{"2025-06-30", 319.7, 4.33, 22.0, 4.1, 6205, 20100, 98000, 3450, 3250},
	{"2025-07-31", 320.5, 4.40, 22.1, 4.2, 6350, 20800, 122000, 4150, 3400},
	{"2025-08-31", 321.5, 4.40, 22.2, 4.3, 6450, 21384, 124000, 4600, 3450},
}
