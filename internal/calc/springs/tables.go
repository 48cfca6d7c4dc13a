package springs

// Horizontal reaction modulus m (tf/m⁴) by SPT blow count.
// Source: TQS empirical correlation for horizontal pile springs.
var (
	clayModulus = map[int]float64{
		0: 25.00, 1: 75.00, 2: 112.50, 3: 150.00, 4: 200.00, 5: 250.00,
		6: 300.00, 7: 333.33, 8: 366.67, 9: 400.00, 10: 433.33,
		11: 466.67, 12: 500.00, 13: 520.00, 14: 540.00, 15: 560.00,
		16: 580.00, 17: 600.00, 18: 620.00, 19: 640.00, 20: 660.00,
		21: 680.00, 22: 700.00, 23: 725.00, 24: 750.00, 25: 775.00,
		26: 800.00, 27: 825.00, 28: 850.00, 29: 875.00, 30: 900.00,
	}

	sandModulus = map[int]float64{
		0: 100.00, 1: 150.00, 2: 175.00, 3: 200.00, 4: 225.00, 5: 250.00,
		6: 275.00, 7: 300.00, 8: 315.38, 9: 330.76, 10: 346.15,
		11: 361.52, 12: 376.92, 13: 392.30, 14: 407.69, 15: 423.07,
		16: 438.46, 17: 453.84, 18: 469.23, 19: 484.56, 20: 500.00,
		21: 515.00, 22: 530.00, 23: 545.00, 24: 560.00, 25: 575.00,
		26: 590.00, 27: 605.00, 28: 620.00, 29: 635.00, 30: 650.00,
		31: 665.00, 32: 680.00, 33: 695.00, 34: 710.00, 35: 725.00,
		36: 740.00, 37: 755.00, 38: 770.00, 39: 785.00, 40: 800.00,
		41: 870.00, 42: 940.00, 43: 1010.00, 44: 1080.00, 45: 1150.00,
		46: 1220.00, 47: 1290.00, 48: 1360.00, 49: 1430.00, 50: 1500.00,
	}

	modulus = map[SoilType]map[int]float64{
		Clay: clayModulus,
		Sand: sandModulus,
	}
)
